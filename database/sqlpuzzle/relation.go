package sqlpuzzle

import (
	"strings"
)

// A comparison operator usable in a condition.  The zero value means "no
// relation given" and is resolved to the value's default relation.
type Relation int

const (
	EQ Relation = iota + 1
	NE
	GT
	GE
	LT
	LE
	LIKE
	REGEXP
	IN
	NOT_IN
)

// Returns all relations in declaration order.
func Relations() []Relation {
	return []Relation{EQ, NE, GT, GE, LT, LE, LIKE, REGEXP, IN, NOT_IN}
}

// Returns the rendered operator, or "undefined" for unknown relations.
func (r Relation) String() string {
	switch r {
	case EQ:
		return "="
	case NE:
		return "!="
	case GT:
		return ">"
	case GE:
		return ">="
	case LT:
		return "<"
	case LE:
		return "<="
	case LIKE:
		return "LIKE"
	case REGEXP:
		return "REGEXP"
	case IN:
		return "IN"
	case NOT_IN:
		return "NOT IN"
	}
	return "undefined"
}

func (r Relation) IsValid() bool {
	return r >= EQ && r <= NOT_IN
}

// Parses an operator ("=", "!=", "<>", "not in", ...) or a relation name
// ("eq", "ne", "not_in", ...), case insensitive.
func ParseRelation(s string) (Relation, error) {
	normalized := strings.Join(strings.Fields(strings.ToUpper(s)), " ")
	switch normalized {
	case "=", "==", "EQ":
		return EQ, nil
	case "!=", "<>", "NE":
		return NE, nil
	case ">", "GT":
		return GT, nil
	case ">=", "GE":
		return GE, nil
	case "<", "LT":
		return LT, nil
	case "<=", "LE":
		return LE, nil
	case "LIKE":
		return LIKE, nil
	case "REGEXP":
		return REGEXP, nil
	case "IN":
		return IN, nil
	case "NOT IN", "NOT_IN":
		return NOT_IN, nil
	}
	return 0, newInvalidArgument("Unknown relation '%s'", s)
}

var (
	comparisonRelations = []Relation{EQ, NE, GT, GE, LT, LE}
	textRelations       = []Relation{EQ, NE, GT, GE, LT, LE, LIKE, REGEXP}
	booleanRelations    = []Relation{EQ, NE}
	sequenceRelations   = []Relation{IN, NOT_IN}
	subqueryRelations   = []Relation{EQ, NE, GT, GE, LT, LE, IN, NOT_IN}
)

// Returns the relations a value of category c may be compared with.
func AllowedRelations(c Category) []Relation {
	var allowed []Relation
	switch c {
	case TextCategory:
		allowed = textRelations
	case BooleanCategory:
		allowed = booleanRelations
	case NumericCategory, DateTimeCategory:
		allowed = comparisonRelations
	case SequenceCategory:
		allowed = sequenceRelations
	case SubqueryCategory:
		allowed = subqueryRelations
	case OtherCategory:
		return nil
	}
	result := make([]Relation, len(allowed))
	copy(result, allowed)
	return result
}

// Returns true if relation may be used with a value of category c.
func IsRelationAllowed(relation Relation, c Category) bool {
	for _, allowed := range AllowedRelations(c) {
		if allowed == relation {
			return true
		}
	}
	return false
}

// Returns the relation used when none is given.
func DefaultRelation(c Category) (Relation, bool) {
	switch c {
	case TextCategory, BooleanCategory, NumericCategory, DateTimeCategory,
		SubqueryCategory:
		return EQ, true
	case SequenceCategory:
		return IN, true
	case OtherCategory:
		return 0, false
	}
	return 0, false
}
