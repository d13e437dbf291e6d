package catalog

// Word is one entry in a puzzle word bank. Answer is the correct synonym of
// Text; Distractors are the wrong options.
type Word struct {
	ID          string   `json:"id" yaml:"id"`
	Text        string   `json:"text" yaml:"text"`
	Answer      string   `json:"answer" yaml:"answer"`
	Distractors []string `json:"distractors" yaml:"distractors"`
}

// WordBanks maps a base language to its word bank. Order matters: the daily
// selection shuffles by index.
var WordBanks = map[string][]Word{
	"en": {
		{ID: "en-happy", Text: "happy", Answer: "joyful", Distractors: []string{"weary", "angry", "quiet"}},
		{ID: "en-big", Text: "big", Answer: "large", Distractors: []string{"thin", "small", "round"}},
		{ID: "en-fast", Text: "fast", Answer: "quick", Distractors: []string{"slow", "late", "heavy"}},
		{ID: "en-begin", Text: "begin", Answer: "start", Distractors: []string{"finish", "pause", "wait"}},
		{ID: "en-brave", Text: "brave", Answer: "courageous", Distractors: []string{"timid", "careless", "polite"}},
		{ID: "en-calm", Text: "calm", Answer: "peaceful", Distractors: []string{"noisy", "restless", "bright"}},
		{ID: "en-clever", Text: "clever", Answer: "smart", Distractors: []string{"lazy", "rude", "plain"}},
		{ID: "en-tired", Text: "tired", Answer: "exhausted", Distractors: []string{"lively", "hungry", "eager"}},
		{ID: "en-ancient", Text: "ancient", Answer: "old", Distractors: []string{"modern", "fresh", "brief"}},
		{ID: "en-gift", Text: "gift", Answer: "present", Distractors: []string{"debt", "letter", "reward"}},
		{ID: "en-shout", Text: "shout", Answer: "yell", Distractors: []string{"whisper", "listen", "sing"}},
		{ID: "en-rich", Text: "rich", Answer: "wealthy", Distractors: []string{"poor", "famous", "generous"}},
		{ID: "en-kind", Text: "kind", Answer: "caring", Distractors: []string{"cruel", "strict", "shy"}},
		{ID: "en-tiny", Text: "tiny", Answer: "minute", Distractors: []string{"huge", "wide", "tall"}},
		{ID: "en-hard", Text: "difficult", Answer: "hard", Distractors: []string{"easy", "soft", "simple"}},
	},
	"es": {
		{ID: "es-feliz", Text: "feliz", Answer: "alegre", Distractors: []string{"triste", "cansado", "serio"}},
		{ID: "es-grande", Text: "grande", Answer: "enorme", Distractors: []string{"pequeño", "estrecho", "corto"}},
		{ID: "es-rapido", Text: "rápido", Answer: "veloz", Distractors: []string{"lento", "pesado", "tarde"}},
		{ID: "es-empezar", Text: "empezar", Answer: "comenzar", Distractors: []string{"terminar", "esperar", "parar"}},
		{ID: "es-valiente", Text: "valiente", Answer: "audaz", Distractors: []string{"cobarde", "tímido", "torpe"}},
		{ID: "es-tranquilo", Text: "tranquilo", Answer: "sereno", Distractors: []string{"nervioso", "ruidoso", "inquieto"}},
		{ID: "es-listo", Text: "listo", Answer: "inteligente", Distractors: []string{"perezoso", "grosero", "lento"}},
		{ID: "es-antiguo", Text: "antiguo", Answer: "viejo", Distractors: []string{"moderno", "nuevo", "breve"}},
		{ID: "es-regalo", Text: "regalo", Answer: "obsequio", Distractors: []string{"deuda", "carta", "precio"}},
		{ID: "es-gritar", Text: "gritar", Answer: "chillar", Distractors: []string{"susurrar", "escuchar", "cantar"}},
		{ID: "es-rico", Text: "rico", Answer: "adinerado", Distractors: []string{"pobre", "famoso", "generoso"}},
		{ID: "es-bonito", Text: "bonito", Answer: "hermoso", Distractors: []string{"feo", "sucio", "oscuro"}},
	},
}

// DefaultLanguage is used when a locale matches no bank.
const DefaultLanguage = "en"
