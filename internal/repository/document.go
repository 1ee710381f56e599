package repository

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/umalmyha/clientes/internal/model"
)

// document field names used by the remote store
const (
	fieldDocuments = "documentos"
	fieldID        = "_id"
	fieldOID       = "$oid"
	fieldName      = "nombre"
	fieldAge       = "edad"
	fieldCity      = "ciudad"
	fieldEmail     = "correo"
)

type customerData struct {
	Name *string `json:"nombre,omitempty"`
	Age  *int    `json:"edad,omitempty"`
	City *string `json:"ciudad,omitempty"`
}

type newCustomerData struct {
	Name string `json:"nombre"`
	Age  int    `json:"edad"`
}

type jsonObject map[string]json.RawMessage

// decodeCustomers reads customers from listing payload. Only a body which is not JSON at all is
// reported as error, any unexpected shape below it degrades to empty list or default field values.
func decodeCustomers(body []byte) ([]*model.Customer, bool) {
	customers := make([]*model.Customer, 0)
	if !json.Valid(body) {
		return customers, false
	}

	var root jsonObject
	if err := json.Unmarshal(body, &root); err != nil {
		return customers, true
	}

	var docs []json.RawMessage
	if err := json.Unmarshal(root[fieldDocuments], &docs); err != nil {
		return customers, true
	}

	for _, raw := range docs {
		var doc jsonObject
		if err := json.Unmarshal(raw, &doc); err != nil || doc == nil {
			continue
		}
		customers = append(customers, decodeCustomer(doc))
	}
	return customers, true
}

func decodeCustomer(doc jsonObject) *model.Customer {
	c := &model.Customer{}

	var id jsonObject
	if raw, ok := doc.value(fieldID); ok && json.Unmarshal(raw, &id) == nil {
		if oid, ok := id.stringField(fieldOID); ok {
			c.ID = &oid
		}
	}

	c.Name, _ = doc.stringField(fieldName)

	if age, ok := doc.ageField(fieldAge); ok {
		c.Age = &age
	}

	if city, ok := doc.stringField(fieldCity); ok {
		c.City = &city
	}

	c.Email, _ = doc.stringField(fieldEmail)
	return c
}

// value returns raw field value, explicit null counts as absent
func (o jsonObject) value(key string) (json.RawMessage, bool) {
	raw, ok := o[key]
	if !ok || string(raw) == "null" {
		return nil, false
	}
	return raw, true
}

func (o jsonObject) stringField(key string) (string, bool) {
	raw, ok := o.value(key)
	if !ok {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// int32Field reads integral JSON number fitting into 32 bits, anything else is treated as absent
func (o jsonObject) int32Field(key string) (int, bool) {
	raw, ok := o.value(key)
	if !ok {
		return 0, false
	}

	var n int32
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	return int(n), true
}

func (o jsonObject) boolField(key string) bool {
	var b bool
	if err := json.Unmarshal(o[key], &b); err != nil {
		return false
	}
	return b
}

// ageField accepts native number or numeric string, negative values are dropped
func (o jsonObject) ageField(key string) (int, bool) {
	age, ok := o.int32Field(key)
	if !ok {
		s, isStr := o.stringField(key)
		if !isStr {
			return 0, false
		}

		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
		if err != nil {
			return 0, false
		}
		age = int(n)
	}

	if age < 0 {
		return 0, false
	}
	return age, true
}
