package term

import "strconv"

// Serialize renders t into an unambiguous string encoding of its exact
// structure (tag-sensitive, unlike a display string). Two terms produce
// the same serialization if and only if they are Equal. This is used as
// a map-key / identity surrogate wherever Go's lack of slice-keyed maps
// would otherwise get in the way (internal/clause's literal sets,
// engine's canon/cost/proof maps) — it is not for human consumption;
// see package render for that.
func Serialize(t Term) string {
	var b []byte
	b = appendTerm(b, t)
	return string(b)
}

func appendTerm(b []byte, t Term) []byte {
	switch x := t.(type) {
	case Atom:
		b = append(b, 'a')
		b = strconv.AppendInt(b, int64(x.ID), 10)
	case Args:
		b = append(b, '(')
		for i, c := range x.items {
			if i > 0 {
				b = append(b, ',')
			}
			b = appendTerm(b, c)
		}
		b = append(b, ')')
	case Functor:
		b = append(b, 'f')
		b = strconv.AppendInt(b, int64(x.Head), 10)
		b = appendTerm(b, x.Args)
	case Relation:
		b = append(b, 'r')
		b = strconv.AppendInt(b, int64(x.Head), 10)
		b = appendTerm(b, x.Args)
	case And:
		b = append(b, '&')
		b = appendTerm(b, x.Left)
		b = appendTerm(b, x.Right)
	case Or:
		b = append(b, '|')
		b = appendTerm(b, x.Left)
		b = appendTerm(b, x.Right)
	case Not:
		b = append(b, '!')
		b = appendTerm(b, x.Body)
	case Implies:
		b = append(b, '>')
		b = appendTerm(b, x.Left)
		b = appendTerm(b, x.Right)
	case Iff:
		b = append(b, '=')
		b = appendTerm(b, x.Left)
		b = appendTerm(b, x.Right)
	case Universal:
		b = append(b, 'A')
		b = strconv.AppendInt(b, int64(x.Var), 10)
		b = appendTerm(b, x.Body)
	case Existential:
		b = append(b, 'E')
		b = strconv.AppendInt(b, int64(x.Var), 10)
		b = appendTerm(b, x.Body)
	}
	return b
}
