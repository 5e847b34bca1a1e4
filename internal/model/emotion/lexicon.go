package emotion

// LexiconEntry 描述单个情绪的关键词层级与基础强度。
// 词表在进程启动时加载一次，运行期间只读。
type LexiconEntry struct {
	Emotion          Label
	StrongKeywords   []string
	ModerateKeywords []string
	ContextBoosters  []string
	BaseIntensity    float64
	Color            string
}

// Lexicon returns the static per-emotion keyword table. Callers must treat
// the returned entries as read-only.
func Lexicon() []LexiconEntry {
	return lexicon
}

// SarcasmIndicators 与 NegationWords 是在打分前短路检查的触发词。
// 字面子串匹配，精度有限："sure"、"no" 出现在任何语境都会触发。
func SarcasmIndicators() []string {
	return sarcasmIndicators
}

func NegationWords() []string {
	return negationWords
}

var sarcasmIndicators = []string{"yeah right", "sure", "whatever", "obviously", "duh"}

var negationWords = []string{"not", "no", "never", "none", "nobody", "nothing", "nowhere"}

var lexicon = []LexiconEntry{
	{
		Emotion: Joy,
		StrongKeywords: []string{
			"ecstatic", "elated", "thrilled", "overjoyed", "euphoric", "blissful", "promoted",
			"won", "lottery", "jackpot", "victory", "triumph", "champion", "first place",
			"exhilarated", "jubilant", "rapturous", "ecstasy", "euphoria", "bliss",
			"achievement", "success", "accomplishment", "breakthrough", "milestone",
		},
		ModerateKeywords: []string{
			"happy", "joy", "joyful", "excited", "wonderful", "amazing", "fantastic", "great",
			"awesome", "blessed", "grateful", "cheerful", "delighted", "good", "excellent",
			"perfect", "love it", "achieved", "success", "accomplished", "proud", "pleased",
			"content", "satisfied", "glad", "merry", "jolly", "lively", "vibrant", "energetic",
			"enthusiastic", "optimistic", "hopeful", "inspired", "motivated", "fulfilled",
		},
		ContextBoosters: []string{
			"today", "just", "finally", "got", "received", "earned", "deserved", "worked hard",
			"dream come true", "miracle", "blessing", "gift", "surprise", "unexpected",
		},
		BaseIntensity: 0.8,
		Color:         "#ffb000",
	},
	{
		Emotion: Fear,
		StrongKeywords: []string{
			"terrified", "petrified", "horrified", "panic", "terror", "dread", "alarm",
			"killed", "killing", "murder", "dead", "die", "death", "dying", "corpse",
			"blood", "gore", "violence", "attack", "assault", "threat", "dangerous",
			"scary", "frightening", "spooky", "haunted", "ghost", "monster", "nightmare",
		},
		ModerateKeywords: []string{
			"scared", "afraid", "anxious", "worried", "nervous", "fear", "stress", "stressed",
			"overwhelmed", "dread", "anxiety", "uneasy", "uncomfortable", "tense", "jumpy",
			"paranoid", "suspicious", "cautious", "wary", "hesitant", "reluctant", "timid",
			"shy", "intimidated", "threatened", "vulnerable", "exposed", "unsafe",
		},
		ContextBoosters: []string{
			"dark", "night", "alone", "strange", "unknown", "unfamiliar", "weird", "odd",
			"creepy", "eerie", "ominous", "foreboding", "warning", "caution", "beware",
		},
		BaseIntensity: 0.8,
		Color:         "#b644ff",
	},
	{
		Emotion: Sadness,
		StrongKeywords: []string{
			"devastated", "heartbroken", "depressed", "despair", "grief", "mourning",
			"crushed", "destroyed", "ruined", "hopeless", "helpless", "worthless", "useless",
			"abandoned", "rejected", "betrayed", "cheated", "lied to", "deceived", "fooled",
		},
		ModerateKeywords: []string{
			"sad", "down", "lonely", "hurt", "broken", "crying", "tears", "sorrow",
			"melancholy", "gloomy", "lost", "miss", "alone", "disappointed", "let down",
			"upset", "unhappy", "miserable", "wretched", "pitiful", "pathetic", "hopeless",
			"discouraged", "disheartened", "demoralized", "defeated", "beaten", "crushed",
		},
		ContextBoosters: []string{
			"never", "always", "forever", "gone", "lost", "missing", "empty", "void",
			"meaningless", "pointless", "useless", "hopeless", "helpless", "powerless",
		},
		BaseIntensity: 0.8,
		Color:         "#4a9eff",
	},
	{
		Emotion: Anger,
		StrongKeywords: []string{
			"furious", "rage", "livid", "enraged", "fuming", "hate", "despise", "disgusted",
			"outraged", "incensed", "infuriated", "irate", "wrathful", "vengeful", "hostile",
			"aggressive", "violent", "destructive", "hateful", "spiteful", "malicious",
		},
		ModerateKeywords: []string{
			"angry", "mad", "frustrated", "irritated", "annoyed", "pissed", "upset",
			"bothered", "resentment", "touchy", "sensitive", "defensive", "protective",
			"jealous", "envious", "bitter", "cynical", "sarcastic", "mocking", "taunting",
		},
		ContextBoosters: []string{
			"boss", "work", "stupid", "idiot", "damn", "hell", "fuck", "shit", "bitch",
			"asshole", "jerk", "moron", "fool", "clown", "joke", "ridiculous", "absurd",
		},
		BaseIntensity: 0.9,
		Color:         "#ff4757",
	},
	{
		Emotion: Love,
		StrongKeywords: []string{
			"adore", "worship", "passionate", "devoted", "cherish", "treasure", "precious",
			"beloved", "darling", "sweetheart", "soulmate", "true love", "eternal love",
			"unconditional love", "pure love", "deep love", "intense love", "burning love",
		},
		ModerateKeywords: []string{
			"love", "romance", "romantic", "crush", "affection", "valentine", "tender",
			"beloved", "dear", "sweet", "caring", "nurturing", "protective", "supportive",
			"understanding", "compassionate", "empathetic", "sympathetic", "kind", "gentle",
		},
		ContextBoosters: []string{
			"hugged", "kissed", "married", "relationship", "together", "forever", "always",
			"soul", "heart", "feelings", "emotions", "connection", "bond", "attachment",
		},
		BaseIntensity: 0.7,
		Color:         "#ff6b9d",
	},
	{
		Emotion: Peace,
		StrongKeywords: []string{
			"blissful", "serene", "tranquil", "zenlike", "nirvana", "enlightenment",
			"meditative", "contemplative", "reflective", "mindful", "centered", "balanced",
			"harmonious", "unified", "integrated", "whole", "complete", "fulfilled",
		},
		ModerateKeywords: []string{
			"calm", "peace", "peaceful", "relaxed", "zen", "meditation", "quiet", "still",
			"content", "balanced", "centered", "mindful", "satisfied", "fulfilled",
			"comfortable", "at ease", "unworried", "untroubled", "unconcerned", "carefree",
		},
		ContextBoosters: []string{
			"finally", "at last", "relief", "resolved", "settled", "finished", "complete",
			"done", "over", "past", "behind", "forgotten", "forgiven", "accepted",
		},
		BaseIntensity: 0.6,
		Color:         "#00ff88",
	},
	{
		Emotion: Neutral,
		StrongKeywords: []string{
			"indifferent", "apathetic", "unconcerned", "uninterested", "unmoved", "unaffected",
			"detached", "disconnected", "disengaged", "uninvolved", "uncommitted", "neutral",
		},
		ModerateKeywords: []string{
			"okay", "fine", "alright", "normal", "average", "ordinary", "regular",
			"standard", "typical", "usual", "common", "tried", "attempted", "maybe",
			"possibly", "perhaps", "probably", "likely", "unlikely", "doubtful", "uncertain",
		},
		ContextBoosters: []string{
			"whatever", "doesn't matter", "not sure", "don't know", "don't care",
			"no opinion", "no preference", "no feeling", "emotionless", "numb",
		},
		BaseIntensity: 0.5,
		Color:         "#808080",
	},
}
