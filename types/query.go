package types

import (
	"fmt"
	"strings"
)

type QueryKind uint8

const (
	Query_None QueryKind = iota
	Query_Collide
	Query_Basis
	Query_Locate
	Query_Constrain
)

var QueryNameMap = map[string]QueryKind{
	"collide":    Query_Collide,
	"collision":  Query_Collide,
	"basis":      Query_Basis,
	"locate":     Query_Locate,
	"dofs":       Query_Locate,
	"constrain":  Query_Constrain,
	"constraint": Query_Constrain,
	"periodic":   Query_Constrain,
}

func NewQueryKind(label string) (qk QueryKind, err error) {
	var ok bool
	if qk, ok = QueryNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown query kind %q", label)
	}
	return
}

func (qk QueryKind) String() string {
	switch qk {
	case Query_Collide:
		return "Collide"
	case Query_Basis:
		return "Basis"
	case Query_Locate:
		return "Locate"
	case Query_Constrain:
		return "Constrain"
	default:
		return "None"
	}
}
