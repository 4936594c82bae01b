package mask_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/rise-and-shine/decorators/mask"
)

func ordered(pairs ...any) *orderedmap.OrderedMap[string, any] {
	om := orderedmap.New[string, any]()
	for i := 0; i < len(pairs); i += 2 {
		om.Set(pairs[i].(string), pairs[i+1])
	}
	return om
}

func assertOrdered(t *testing.T, expected, actual *orderedmap.OrderedMap[string, any]) {
	t.Helper()

	var wantKeys, gotKeys []string
	var wantValues, gotValues []any
	for p := expected.Oldest(); p != nil; p = p.Next() {
		wantKeys = append(wantKeys, p.Key)
		wantValues = append(wantValues, p.Value)
	}
	for p := actual.Oldest(); p != nil; p = p.Next() {
		gotKeys = append(gotKeys, p.Key)
		gotValues = append(gotValues, p.Value)
	}

	assert.Equal(t, wantKeys, gotKeys)
	assert.Equal(t, wantValues, gotValues)
}

type credentials struct {
	User   string `json:"user"`
	APIKey string `json:"api_key" mask:"true"`
}

type request struct {
	Name     string            `yaml:"name"`
	Creds    credentials       `json:"creds"`
	Headers  map[string]string `yaml:"headers"    mask:"TRUE"`
	Attempts int               `mask:"true"`
	Ratio    float64           `mask:"true"`
	IDs      []int             `mask:"true"`
	Enabled  bool              `mask:"true"`
	Token    *string           `mask:"true"`
	Skipped  string            `json:"-"`
	Timeout  time.Duration
	Created  time.Time
	internal string
}

func TestStruct(t *testing.T) {
	token := "t-1"
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("masks tagged fields by kind", func(t *testing.T) {
		got := mask.Struct(request{
			Name:     "demo",
			Creds:    credentials{User: "admin", APIKey: "sk-1"},
			Headers:  map[string]string{"authorization": "Bearer x"},
			Attempts: 3,
			Ratio:    0.5,
			IDs:      []int{1},
			Enabled:  true,
			Token:    &token,
			Skipped:  "never shown",
			Timeout:  time.Second,
			Created:  created,
			internal: "hidden",
		})

		assertOrdered(t, ordered(
			"name", "demo",
			"creds.user", "admin",
			"creds.api_key", "***masked-string***",
			"headers", "***masked-map***",
			"Attempts", "***masked-int***",
			"Ratio", "***masked-float***",
			"IDs", "***masked-slice***",
			"Enabled", "***masked-bool***",
			"Token", "***masked-string***",
			"Timeout", time.Second,
			"Created", created,
		), got)
	})

	t.Run("keeps zero and nil values", func(t *testing.T) {
		got := mask.Struct(&request{})

		assertOrdered(t, ordered(
			"name", "",
			"creds.user", "",
			"creds.api_key", "",
			"headers", nil,
			"Attempts", 0,
			"Ratio", 0.0,
			"IDs", nil,
			"Enabled", false,
			"Token", nil,
			"Timeout", time.Duration(0),
			"Created", time.Time{},
		), got)
	})

	t.Run("nil input", func(t *testing.T) {
		assert.Equal(t, 0, mask.Struct(nil).Len())
	})
}

func TestValue(t *testing.T) {
	type pair struct {
		A int `json:"a"`
		B int `json:"b"`
	}
	type nested struct {
		Creds *credentials
	}

	tests := []struct {
		name string
		in   any
		want any
	}{
		{name: "nil", in: nil, want: nil},
		{name: "scalar", in: 42, want: 42},
		{name: "struct without sensitive fields", in: pair{A: 1, B: 2}, want: pair{A: 1, B: 2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, mask.Value(tc.in))
		})
	}

	t.Run("sensitive field behind a pointer", func(t *testing.T) {
		got, ok := mask.Value(nested{Creds: &credentials{User: "u", APIKey: "k"}}).(*orderedmap.OrderedMap[string, any])

		assert.True(t, ok)
		assertOrdered(t, ordered(
			"Creds.user", "u",
			"Creds.api_key", "***masked-string***",
		), got)
	})
}
