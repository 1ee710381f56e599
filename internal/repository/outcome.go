package repository

import (
	"encoding/json"

	"github.com/umalmyha/clientes/pkg/docstore"
)

type outcomeKind int

const (
	unconfirmed outcomeKind = iota
	confirmedByCount
	confirmedByAcknowledgement
)

func (k outcomeKind) String() string {
	switch k {
	case confirmedByCount:
		return "confirmed_count"
	case confirmedByAcknowledgement:
		return "confirmed_ack"
	default:
		return "unconfirmed"
	}
}

// outcome is what a single mutation response says about its effect
type outcome struct {
	kind  outcomeKind
	count int
	field string
	raw   string
}

func (o outcome) confirmed() bool {
	return o.kind != unconfirmed
}

// countRule lists candidate effect-count fields in precedence order.
// The first present field decides, even when it reports zero.
type countRule struct {
	fields            []string
	acknowledgedMatch bool
}

var (
	updateCountRule = countRule{
		fields:            []string{"modifiedCount", "nModified", "modified", "modificados"},
		acknowledgedMatch: true,
	}
	deleteCountRule = countRule{
		fields: []string{"deletedCount", "deleted", "n", "eliminados"},
	}
)

func (r countRule) parse(resp *docstore.Response) outcome {
	o := outcome{raw: string(resp.Body)}
	if !resp.Success() {
		return o
	}

	var root jsonObject
	if err := json.Unmarshal(resp.Body, &root); err != nil {
		return o
	}

	for _, f := range r.fields {
		n, ok := root.int32Field(f)
		if !ok {
			continue
		}

		o.field = f
		o.count = n
		if n > 0 {
			o.kind = confirmedByCount
		}
		return o
	}

	if r.acknowledgedMatch {
		matched, _ := root.int32Field("matchedCount")
		if root.boolField("acknowledged") && matched > 0 {
			o.kind = confirmedByAcknowledgement
			o.field = "matchedCount"
			o.count = matched
		}
	}
	return o
}
