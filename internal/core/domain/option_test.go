package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerOptions_Empty(t *testing.T) {
	options := CustomerOptions(nil)

	require.NotNil(t, options)
	assert.Empty(t, options)
}

func TestCustomerOptions_NameAndEmail(t *testing.T) {
	options := CustomerOptions([]Customer{{ID: 5, Name: "A", Email: "a@b.com"}})

	assert.Equal(t, []OptionPair{{Value: "5", Label: "A (a@b.com)"}}, options)
}

func TestCustomerOptions_FallsBackToEmail(t *testing.T) {
	options := CustomerOptions([]Customer{{ID: 9, Email: "only@example.com"}})

	assert.Equal(t, "only@example.com", options[0].Label)
}

func TestCustomerOptions_EscapesLabel(t *testing.T) {
	options := CustomerOptions([]Customer{{ID: 1, Name: `<b>Bob</b> & "Co"`, Email: "bob@example.com"}})

	assert.Equal(t, "&lt;b&gt;Bob&lt;/b&gt; &amp; &#34;Co&#34; (bob@example.com)", options[0].Label)
}

func TestDiscountOptions_NameAndCode(t *testing.T) {
	options := DiscountOptions([]Adjustment{
		{ID: 3, Name: "Spring Sale", Code: "SPRING"},
		{ID: 4, Code: "NONAME"},
	})

	require.Len(t, options, 2)
	assert.Equal(t, OptionPair{Value: "3", Label: "Spring Sale (SPRING)"}, options[0])
	assert.Equal(t, OptionPair{Value: "4", Label: "NONAME"}, options[1])
}

func TestDownloadOptions_PreservesOrder(t *testing.T) {
	options := DownloadOptions([]Download{
		{ID: 20, Title: "Zeta"},
		{ID: 10, Title: "Alpha"},
	})

	assert.Equal(t, "20", options[0].Value)
	assert.Equal(t, "10", options[1].Value)
}

func TestNewOption_ValueIsNumericOnly(t *testing.T) {
	option := NewOption(-42, "Negative")

	assert.Equal(t, "42", option.Value)
}

func TestSanitizeNumeric(t *testing.T) {
	assert.Equal(t, "123", SanitizeNumeric("1a2b3"))
	assert.Equal(t, "", SanitizeNumeric("abc"))
	assert.Equal(t, "007", SanitizeNumeric("007"))
}

func TestKeyedOptions_Sorted(t *testing.T) {
	labels := map[string]string{
		"complete": "Completed",
		"pending":  "Pending",
		"failed":   "Failed",
	}

	first := KeyedOptions(labels, true)
	second := KeyedOptions(labels, true)

	assert.Equal(t, first, second)
	assert.Equal(t, []OptionPair{
		{Value: "complete", Label: "Completed"},
		{Value: "failed", Label: "Failed"},
		{Value: "pending", Label: "Pending"},
	}, first)
}

func TestKeyedOptions_UnsortedIsOrderedByValue(t *testing.T) {
	labels := map[string]string{
		"b": "Alpha",
		"a": "Zulu",
	}

	options := KeyedOptions(labels, false)

	assert.Equal(t, "a", options[0].Value)
	assert.Equal(t, "b", options[1].Value)
}
