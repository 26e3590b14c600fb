package classifier

import (
	"errors"
	"testing"

	"fjacquet/statement-reconciler/internal/logging"
	"fjacquet/statement-reconciler/internal/models"
	"fjacquet/statement-reconciler/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	c := New(logging.NewMockLogger())

	tests := []struct {
		name     string
		filename string
		want     models.Category
	}{
		{"boleto with key", "Boleto NF123.pdf", models.CategoryPaymentSlip},
		{"nf word", "NF 123.pdf", models.CategoryInvoice},
		{"nf separated by underscore", "nf_123.pdf", models.CategoryInvoice},
		{"nfe word", "NFe-555.xml", models.CategoryInvoice},
		{"nota fiscal phrase", "Nota Fiscal 0012.pdf", models.CategoryInvoice},
		{"comprovante and pix", "comprovante_pix_456.pdf", models.CategoryReceipt},
		{"pix only", "pix_456.pdf", models.CategoryReceipt},
		{"recibo", "RECIBO aluguel.jpg", models.CategoryReceipt},
		{"invoice wins over receipt", "NF 9 comprovante.pdf", models.CategoryInvoice},
		{"boleto wins over receipt", "boleto recibo.pdf", models.CategoryPaymentSlip},
		{"nf inside a word is not a word", "CONFERENCIA.pdf", models.CategoryOther},
		{"nf glued to digits is not a word", "NF123.pdf", models.CategoryOther},
		{"pix inside a word", "pixel.png", models.CategoryOther},
		{"unrelated", "contrato.pdf", models.CategoryOther},
		{"empty", "", models.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.filename))
		})
	}
}

func TestClassify_Total(t *testing.T) {
	c := New(logging.NewMockLogger())
	inputs := []string{"", " ", "\x00", "NF", "nfe", "Nota fiscal", "BOLETO", "ç.pdf", "🙂 pix 🙂"}

	for _, in := range inputs {
		got := c.Classify(in)
		assert.True(t, got.IsValid(), "input %q gave %q", in, got)
	}
}

func TestClassifyWithMatch_ReportsKeywordAndLogs(t *testing.T) {
	logger := logging.NewMockLogger()
	c := New(logger)

	category, keyword := c.ClassifyWithMatch("comprovante_pix_456.pdf")
	assert.Equal(t, models.CategoryReceipt, category)
	assert.Equal(t, "comprovante", keyword)

	debug := logger.GetEntriesByLevel("DEBUG")
	require.Len(t, debug, 1)
	doc, _ := debug[0].FieldValue(logging.FieldDocument)
	assert.Equal(t, "comprovante_pix_456.pdf", doc)

	category, keyword = c.ClassifyWithMatch("misc.txt")
	assert.Equal(t, models.CategoryOther, category)
	assert.Empty(t, keyword)
}

func TestRules_DeclarationOrder(t *testing.T) {
	rules := New(nil).Rules()
	require.Len(t, rules, 3)
	assert.Equal(t, models.CategoryInvoice, rules[0].Category)
	assert.Equal(t, models.CategoryPaymentSlip, rules[1].Category)
	assert.Equal(t, models.CategoryReceipt, rules[2].Category)

	labels := []string{}
	for _, m := range rules[2].Matchers {
		labels = append(labels, m.Label)
	}
	assert.Equal(t, []string{"comprovante", "pix", "recibo"}, labels)
}

func TestNewFromConfig(t *testing.T) {
	t.Run("custom rules", func(t *testing.T) {
		c, err := NewFromConfig([]models.ClassificationRuleConfig{
			{Category: "Receipt", Keywords: []models.KeywordConfig{{Term: "ticket", WholeWord: true}}},
			{Category: "invoice", Keywords: []models.KeywordConfig{{Term: "fatura"}}},
		}, logging.NewMockLogger())
		require.NoError(t, err)

		assert.Equal(t, models.CategoryReceipt, c.Classify("ticket-12.pdf"))
		assert.Equal(t, models.CategoryInvoice, c.Classify("minhafatura.pdf"))
		assert.Equal(t, models.CategoryOther, c.Classify("boleto.pdf"))
	})

	t.Run("regex metacharacters are literal", func(t *testing.T) {
		c, err := NewFromConfig([]models.ClassificationRuleConfig{
			{Category: "invoice", Keywords: []models.KeywordConfig{{Term: "n.f"}}},
		}, nil)
		require.NoError(t, err)

		assert.Equal(t, models.CategoryInvoice, c.Classify("N.F 1.pdf"))
		assert.Equal(t, models.CategoryOther, c.Classify("nxf.pdf"))
	})

	errorCases := []struct {
		name   string
		config []models.ClassificationRuleConfig
		errMsg string
	}{
		{"unknown category", []models.ClassificationRuleConfig{{Category: "contract", Keywords: []models.KeywordConfig{{Term: "x"}}}}, "unsupported category"},
		{"other is not a target", []models.ClassificationRuleConfig{{Category: "other", Keywords: []models.KeywordConfig{{Term: "x"}}}}, "unsupported category"},
		{"no keywords", []models.ClassificationRuleConfig{{Category: "invoice"}}, "no keywords"},
		{"blank keyword", []models.ClassificationRuleConfig{{Category: "invoice", Keywords: []models.KeywordConfig{{Term: "  "}}}}, "empty keyword"},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFromConfig(tt.config, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)

			var validationErr *parsererror.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Contains(t, validationErr.Subject, "rule 0")
		})
	}
}
