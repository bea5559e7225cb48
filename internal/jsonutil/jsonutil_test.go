package jsonutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m
}

func TestObjChainsThroughMissingLinks(t *testing.T) {
	m := decode(t, `{"tender": {"value": {"currency": "GBP"}}}`)

	assert.Equal(t, "GBP", Obj(m, "tender", "value")["currency"])
	assert.Empty(t, Obj(m, "tender", "missing", "deeper"))
	assert.Empty(t, Obj(m, "nope"))
}

func TestObjToleratesWrongTypes(t *testing.T) {
	m := decode(t, `{"tender": "not an object"}`)
	assert.Empty(t, Obj(m, "tender", "value"))
}

func TestStr(t *testing.T) {
	m := decode(t, `{"buyer": {"id": "B1", "n": 3}}`)

	got := Str(m, "buyer", "id")
	require.NotNil(t, got)
	assert.Equal(t, "B1", *got)

	assert.Nil(t, Str(m, "buyer", "missing"))
	assert.Nil(t, Str(m, "buyer", "n"), "numbers are not coerced to strings")
	assert.Nil(t, Str(m))
}

func TestNumAndBool(t *testing.T) {
	m := decode(t, `{"value": {"amount": 1500.5}, "suitability": {"sme": true}}`)

	amount := Num(m, "value", "amount")
	require.NotNil(t, amount)
	assert.Equal(t, 1500.5, *amount)
	assert.Nil(t, Num(m, "value", "currency"))

	sme := Bool(m, "suitability", "sme")
	require.NotNil(t, sme)
	assert.True(t, *sme)
	assert.Nil(t, Bool(m, "suitability", "vcse"))
}

func TestObjectsFiltersNonObjects(t *testing.T) {
	m := decode(t, `{"parties": [{"id": "P1"}, "junk", 7, {"id": "P2"}]}`)

	parties := Objects(m, "parties")
	require.Len(t, parties, 2)
	assert.Equal(t, "P1", parties[0]["id"])
	assert.Equal(t, "P2", parties[1]["id"])
}

func TestCollectRendersScalars(t *testing.T) {
	m := decode(t, `{"docs": [{"id": "d1"}, {"id": 2}, {"id": true}, {"other": "x"}]}`)

	got := Collect(Objects(m, "docs"), "id")
	assert.Equal(t, []string{"d1", "2", "true"}, got)
}

func TestCollectNested(t *testing.T) {
	m := decode(t, `{"parties": [
		{"identifier": {"legalName": "Acme Ltd"}},
		{"identifier": "junk"},
		{}
	]}`)

	got := CollectNested(Objects(m, "parties"), "identifier", "legalName")
	assert.Equal(t, []string{"Acme Ltd"}, got)
}

func TestStrings(t *testing.T) {
	m := decode(t, `{"tag": ["award", 1, "planning"]}`)
	assert.Equal(t, []string{"award", "planning"}, Strings(Arr(m, "tag")))
	assert.Empty(t, Strings(Arr(m, "missing")))
}
