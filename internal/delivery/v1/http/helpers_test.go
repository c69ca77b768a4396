package http

import (
	"encoding/json"
	"errors"
	nethttp "net/http"
	"testing"

	"github.com/radhe-vastra/storefront-backend/pkg/e"
)

func TestMoneyUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want int64
		err  error
	}{
		{"integer number", `499`, 49900, nil},
		{"decimal number", `599.99`, 59999, nil},
		{"quoted string", `"599.99"`, 59999, nil},
		{"half unit", `0.5`, 50, nil},
		{"zero", `0`, 0, nil},
		{"negative", `-1`, 0, e.ErrInvalidPrice},
		{"three decimal places", `1.999`, 0, e.ErrPricePrecision},
		{"empty string", `""`, 0, e.ErrInvalidPrice},
		{"null", `null`, 0, e.ErrInvalidPrice},
		{"not a number", `"four"`, 0, e.ErrInvalidPrice},
		{"beyond limit", `2000000000`, 0, e.ErrInvalidPrice},
	}

	for _, tc := range cases {
		var m Money
		err := m.UnmarshalJSON([]byte(tc.in))
		if tc.err != nil {
			if !errors.Is(err, tc.err) {
				t.Fatalf("%s: want %v, got %v", tc.name, tc.err, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if int64(m) != tc.want {
			t.Fatalf("%s: want %d, got %d", tc.name, tc.want, m)
		}
	}
}

func TestMoneyMarshal(t *testing.T) {
	cases := []struct {
		in   Money
		want string
	}{
		{49900, "499"},
		{59999, "599.99"},
		{50, "0.5"},
		{0, "0"},
	}

	for _, tc := range cases {
		data, err := json.Marshal(tc.in)
		if err != nil {
			t.Fatalf("marshal %d: %v", tc.in, err)
		}
		if string(data) != tc.want {
			t.Fatalf("marshal %d: want %s, got %s", tc.in, tc.want, data)
		}
	}
}

func TestPayloadUsesCamelCaseNames(t *testing.T) {
	old := Money(69900)
	payload := productPayload{
		Title:    "Tee",
		Price:    49900,
		OldPrice: &old,
		Sizes:    []string{"S"},
		Image:    "img",
	}

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"title", "price", "oldPrice", "sizes", "image"} {
		if _, ok := keys[key]; !ok {
			t.Fatalf("missing wire key %q in %s", key, data)
		}
	}
	if _, ok := keys["old_price"]; ok {
		t.Fatalf("wire payload must not use storage naming: %s", data)
	}
}

func TestToHTTPResponse(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{e.ErrNoSizes, nethttp.StatusBadRequest},
		{e.ErrNoImage, nethttp.StatusBadRequest},
		{e.ErrPricePrecision, nethttp.StatusBadRequest},
		{e.ErrConfirmationRequired, nethttp.StatusBadRequest},
		{e.ErrWrongPassphrase, nethttp.StatusUnauthorized},
		{e.ErrProductNotFound, nethttp.StatusNotFound},
		{e.ErrOperationInFlight, nethttp.StatusConflict},
		{e.ErrStoreNotInitialized, nethttp.StatusServiceUnavailable},
		{errors.New("dial tcp: connection refused"), nethttp.StatusInternalServerError},
	}

	for _, tc := range cases {
		code, _ := ToHTTPResponse(tc.err)
		if code != tc.code {
			t.Fatalf("%v: want %d, got %d", tc.err, tc.code, code)
		}
	}

	// обёртка не должна терять классификацию
	code, _ := ToHTTPResponse(e.Wrap("usecase", e.ErrProductNotFound))
	if code != nethttp.StatusNotFound {
		t.Fatalf("wrapped sentinel: want 404, got %d", code)
	}

	// текст транспортной ошибки отдаётся как есть
	_, msg := ToHTTPResponse(errors.New("dial tcp: connection refused"))
	if msg != "dial tcp: connection refused" {
		t.Fatalf("transport error text must pass through, got %q", msg)
	}
}
