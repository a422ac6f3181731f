package rules

// Template is the rules file written by `prosestat init`. It carries the
// stock focus lemmas, crutch words and reference benchmarks.
const Template = `# prosestat rules
#
# Every section is optional. Severities are "hard" or "advisory".
# Relative file paths resolve against this file's directory.

# focus_lemmas_file = "focus.txt"   # one lemma per line, '#' comments
# families_file = "style.txt"       # lines of: preferred <= alt1, alt2

[overuse]
min_total = 25      # uses in the whole book
min_chapter = 6     # uses in the top chapter
min_share = 0.25    # top chapter share of all uses
severity = "advisory"
lemmas = [
  # facial expressions / gaze
  "smile", "grin", "smirk", "beam", "grimace", "frown", "scowl",
  "stare", "gaze", "glare", "glance", "blink", "squint", "peer", "wink",
  # laughter / crying / vocal reactions
  "laugh", "chuckle", "giggle", "scoff", "sob", "cry", "weep", "groan", "moan",
  # body language / posture / movement
  "shrug", "flinch", "shiver", "tremble", "shake", "shudder",
  "tense", "relax", "slump", "straighten", "lean",
  "shift", "sway", "pace", "freeze", "still",
  # mouth / breathing / throat
  "sigh", "huff", "sniff", "snort", "gasp", "pant",
  "breathe", "exhale", "inhale", "swallow", "gulp", "lick", "purse", "press",
  # hands
  "clench", "tighten", "grip", "grasp", "fidget",
  "drum", "tap", "twist", "wring", "fold", "clasp", "rake",
  # vocal tone / speech style
  "whisper", "murmur", "mutter", "shout", "yell",
  "snap", "bark", "hiss", "growl", "purr", "stammer", "stutter",
  # adverbs / intensifiers
  "suddenly", "quietly", "slowly", "carefully",
  "really", "very", "just", "softly", "gently",
  "almost", "nearly", "slightly", "simply",
  "actually", "probably", "maybe", "perhaps",
  "pretty", "totally", "completely", "absolutely",
  "definitely", "literally",
]

[families]
severity = "hard"

[[families.list]]
preferred = "backup"
variants = ["back-up"]

[[families.list]]
preferred = "okay"
variants = ["OK", "O.K."]

[[families.list]]
preferred = "toward"
variants = ["towards"]

[crutch_words]
severity = "advisory"

[[crutch_words.list]]
word = "like"
threshold = 80

[[crutch_words.list]]
word = "just"
threshold = 60

[[crutch_words.list]]
word = "really"
threshold = 40

[[crutch_words.list]]
word = "very"
threshold = 30

[[crutch_words.list]]
word = "suddenly"
threshold = 20

# Reference usage, shown next to the rates. Never affects flagging.
[[benchmarks]]
title = "Raising Steam (Terry Pratchett)"
word = "like"
words = 126097
count = 453

[[benchmarks]]
title = "Long Call (Cleeves)"
word = "like"
words = 105816
count = 262

[[benchmarks]]
title = "American Gods (Neil Gaiman)"
word = "like"
words = 217087
count = 735

[[benchmarks]]
title = "House Cerulean (Klune)"
word = "like"
words = 116621
count = 392

[phrases]
# file = "cliches.txt"
min_hits = 1
severity = "advisory"
list = [
  "at the end of the day",
  "in the nick of time",
  "let out a breath",
  "heart skipped a beat",
  "a chill ran down",
]

[context]
chars = 60
tokens = 8
`
