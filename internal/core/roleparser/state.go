package roleparser

// state is a node of the role string automaton.
type state int

const (
	stateStart state = iota
	stateRole
	stateNewRole
	stateStartYear
	stateEndYear
	stateNewYear
	stateCount
)

var stateNames = [stateCount]string{
	stateStart:     "START",
	stateRole:      "ROLE",
	stateNewRole:   "NEWROLE",
	stateStartYear: "STARTYEAR",
	stateEndYear:   "ENDYEAR",
	stateNewYear:   "NEWYEAR",
}

func (s state) String() string {
	if s < 0 || s >= stateCount {
		return "UNKNOWN"
	}
	return stateNames[s]
}

// charClass groups input characters by the transition they trigger.
type charClass int

const (
	classSpace charClass = iota
	classComma
	classOpenParen
	classCloseParen
	classHyphen
	classOther
	classCount
)

func classify(r rune) charClass {
	switch r {
	case ' ':
		return classSpace
	case ',':
		return classComma
	case '(':
		return classOpenParen
	case ')':
		return classCloseParen
	case '-':
		return classHyphen
	default:
		return classOther
	}
}

// transitions is the complete table: every state has an entry for every class.
var transitions = [stateCount][classCount]state{
	//               space           ,               (               )               -              other
	stateStart:     {stateStart, stateStart, stateStart, stateStart, stateRole, stateRole},
	stateRole:      {stateRole, stateNewRole, stateStartYear, stateRole, stateRole, stateRole},
	stateNewRole:   {stateNewRole, stateNewRole, stateNewRole, stateNewRole, stateNewRole, stateRole},
	stateStartYear: {stateStartYear, stateNewYear, stateStartYear, stateStart, stateEndYear, stateStartYear},
	stateEndYear:   {stateEndYear, stateNewYear, stateEndYear, stateStart, stateEndYear, stateEndYear},
	stateNewYear:   {stateNewYear, stateNewYear, stateNewYear, stateStart, stateNewYear, stateStartYear},
}

func advance(s state, r rune) state {
	return transitions[s][classify(r)]
}

// delimiting reports whether a self-loop on s skips the character instead of
// adding it to the current token.
func (s state) delimiting() bool {
	return s == stateStart || s == stateNewRole || s == stateNewYear
}
