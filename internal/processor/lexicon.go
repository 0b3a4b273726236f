package processor

// afinn AFINN-165 词表中与新闻语料相关的子集，分值范围 -5..5
var afinn = map[string]int{
	"abandon": -2, "abandoned": -2, "abuse": -3, "abused": -3, "accident": -2, "accidents": -2,
	"accomplish": 2, "accomplished": 2, "accused": -2, "achieve": 2, "achievement": 2, "acquitted": 2,
	"admire": 3, "advantage": 2, "afraid": -2, "aggressive": -2, "agree": 1, "agreement": 1,
	"alarm": -2, "alarming": -2, "alert": -1, "anger": -3, "angry": -3, "anxious": -2,
	"applaud": 2, "appreciate": 2, "approval": 2, "approved": 2, "arrest": -2, "arrested": -3,
	"assault": -2, "attack": -1, "attacked": -1, "attacks": -1, "award": 3, "awarded": 3,
	"bad": -3, "ban": -2, "banned": -2, "benefit": 2, "benefits": 2, "best": 3,
	"better": 2, "blame": -2, "blamed": -2, "blast": -2, "bless": 2, "blocked": -1,
	"boost": 1, "boosted": 1, "brave": 2, "breakthrough": 3, "bribe": -3, "brilliant": 4,
	"broken": -1, "brutal": -3, "burn": -1, "calm": 2, "care": 2, "casualties": -2,
	"catastrophe": -3, "celebrate": 3, "celebrated": 3, "celebration": 3, "championship": 2, "chaos": -2,
	"cheer": 2, "clash": -2, "clashes": -2, "clean": 2, "collapse": -2, "collapsed": -2,
	"comfort": 2, "commend": 2, "complain": -2, "concern": -2, "concerned": -2, "concerns": -2,
	"condemn": -2, "condemned": -2, "confident": 2, "conflict": -2, "confusion": -2, "congrats": 2,
	"congratulate": 2, "corrupt": -3, "corruption": -3, "crash": -2, "crime": -3, "crimes": -3,
	"crisis": -3, "critical": -2, "criticised": -2, "criticized": -2, "cruel": -3, "damage": -3,
	"damaged": -3, "danger": -2, "dangerous": -2, "dead": -3, "deadly": -3, "death": -2,
	"deaths": -2, "defeat": -2, "defeated": -2, "delay": -1, "delayed": -1, "delight": 3,
	"deny": -1, "denied": -2, "destroy": -3, "destroyed": -3, "destruction": -3, "devastating": -2,
	"die": -3, "died": -3, "disaster": -2, "dispute": -2, "disrupt": -2, "disrupted": -2,
	"distress": -2, "drought": -2, "easy": 1, "effective": 2, "emergency": -2, "encourage": 2,
	"enjoy": 2, "excellent": 3, "excited": 3, "exciting": 3, "fail": -2, "failed": -2,
	"failure": -2, "fake": -3, "fear": -2, "fears": -2, "fine": 2, "fire": -2,
	"flood": -2, "floods": -2, "fraud": -4, "free": 1, "freedom": 2, "gain": 2,
	"gains": 2, "glad": 3, "good": 3, "great": 3, "grief": -2, "growth": 2,
	"guilty": -3, "happy": 3, "harm": -2, "hate": -3, "help": 2, "helped": 2,
	"hero": 2, "honour": 2, "honor": 2, "hope": 2, "hopeful": 2, "horrible": -3,
	"hurt": -2, "illegal": -3, "improve": 2, "improved": 2, "improvement": 2, "injured": -2,
	"injury": -2, "innocent": 4, "inspire": 2, "inspiring": 2, "jailed": -2, "joy": 3,
	"kill": -3, "killed": -3, "killing": -3, "kills": -3, "landmark": 2, "launch": 1,
	"launched": 1, "lose": -3, "loss": -3, "losses": -3, "lost": -3, "love": 3,
	"loved": 3, "murder": -2, "murdered": -2, "negative": -2, "outrage": -3, "pain": -2,
	"panic": -3, "peace": 2, "peaceful": 2, "pleased": 3, "positive": 2, "poverty": -1,
	"praise": 3, "praised": 3, "profit": 2, "progress": 2, "prosperity": 3, "protest": -2,
	"protests": -2, "proud": 2, "rape": -4, "recover": 2, "recovered": 2, "recovery": 2,
	"reform": 1, "relief": 1, "rescue": 2, "rescued": 2, "resign": -1, "resigned": -1,
	"riot": -2, "riots": -2, "risk": -2, "safe": 1, "safety": 1, "scam": -2,
	"scandal": -3, "shock": -2, "shocked": -2, "slam": -2, "slams": -2, "strike": -1,
	"strong": 2, "success": 2, "successful": 3, "suffer": -2, "suffering": -2, "support": 2,
	"supported": 2, "terror": -3, "terrorist": -2, "terrorism": -2, "threat": -2, "threaten": -2,
	"threats": -2, "tragedy": -2, "tragic": -2, "trouble": -2, "victim": -3, "victims": -3,
	"victory": 3, "violence": -3, "violent": -3, "war": -2, "welcome": 2, "welcomed": 2,
	"win": 4, "winner": 4, "wins": 4, "won": 3, "worry": -3, "worse": -3,
	"worst": -3, "wounded": -2, "wrong": -2,
}
