package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Arabic JSON keys of an analysis. They are part of the wire contract.
const (
	KeyWord           = "الكلمة"
	KeyPattern        = "الوزن"
	KeyRootVerb       = "الفعل"
	KeyWordType       = "نوع الكلمة"
	KeyNumber         = "العدد"
	KeyGender         = "الجنس"
	KeyTense          = "الزمن"
	KeyDerivationType = "نوع الاشتقاق"
	KeyRootMeaning    = "معنى الجذر"
	KeyDiacritics     = "الحركات"
	KeyUsageExample   = "مثال الاستخدام"
)

// DescriptiveKeys lists the ten keys describing a word, in prompt order.
var DescriptiveKeys = []string{
	KeyPattern,
	KeyRootVerb,
	KeyWordType,
	KeyNumber,
	KeyGender,
	KeyTense,
	KeyDerivationType,
	KeyRootMeaning,
	KeyDiacritics,
	KeyUsageExample,
}

// RequiredKeys must appear in every model reply; the rest default to "".
var RequiredKeys = []string{KeyWord, KeyPattern, KeyRootVerb}

// Analysis is the morphological analysis of one Arabic word.
// Every key is always serialized, empty when the model left it out.
type Analysis struct {
	Word           string `json:"الكلمة"`
	Pattern        string `json:"الوزن"`
	RootVerb       string `json:"الفعل"`
	WordType       string `json:"نوع الكلمة"`
	Number         string `json:"العدد"`
	Gender         string `json:"الجنس"`
	Tense          string `json:"الزمن"`
	DerivationType string `json:"نوع الاشتقاق"`
	RootMeaning    string `json:"معنى الجذر"`
	Diacritics     string `json:"الحركات"`
	UsageExample   string `json:"مثال الاستخدام"`
}

type analysisField struct {
	key string
	dst *string
}

func (a *Analysis) fields() []analysisField {
	return []analysisField{
		{KeyWord, &a.Word},
		{KeyPattern, &a.Pattern},
		{KeyRootVerb, &a.RootVerb},
		{KeyWordType, &a.WordType},
		{KeyNumber, &a.Number},
		{KeyGender, &a.Gender},
		{KeyTense, &a.Tense},
		{KeyDerivationType, &a.DerivationType},
		{KeyRootMeaning, &a.RootMeaning},
		{KeyDiacritics, &a.Diacritics},
		{KeyUsageExample, &a.UsageExample},
	}
}

// UnmarshalJSON accepts a JSON object keyed by the Arabic labels. Multi-word
// labels may also be spelled with underscores ("نوع_الكلمة"); the spaced
// spelling wins when both are present. Missing keys and nulls become "",
// non-string values keep their JSON text.
func (a *Analysis) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("analysis must be a JSON object, got null")
	}

	var out Analysis
	for _, f := range out.fields() {
		v, ok := raw[f.key]
		if !ok {
			v, ok = raw[strings.ReplaceAll(f.key, " ", "_")]
		}
		if !ok {
			continue
		}
		s, err := textValue(v)
		if err != nil {
			return fmt.Errorf("field %q: %w", f.key, err)
		}
		*f.dst = s
	}

	*a = out
	return nil
}

func textValue(v json.RawMessage) (string, error) {
	v = bytes.TrimSpace(v)
	switch {
	case len(v) == 0, bytes.Equal(v, []byte("null")):
		return "", nil
	case v[0] == '"':
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return "", err
		}
		return s, nil
	default:
		var buf bytes.Buffer
		if err := json.Compact(&buf, v); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
}
