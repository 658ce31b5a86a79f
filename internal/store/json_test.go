package store

import "testing"

func TestEncodeDecodeListRoundTrip(t *testing.T) {
	in := []string{"a@example.com", "b@example.com"}
	out := decodeList(encodeList(in))
	if len(out) != len(in) {
		t.Fatalf("got %v, want %v", out, in)
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("out[%d] = %q, want %q", i, out[i], in[i])
		}
	}
}

func TestEncodeListNilBecomesEmptyArray(t *testing.T) {
	if got := encodeList(nil); got != "[]" {
		t.Errorf("encodeList(nil) = %q, want []", got)
	}
	if out := decodeList(""); len(out) != 0 || out == nil {
		t.Errorf("decodeList(\"\") = %v, want non-nil empty slice", out)
	}
}

func TestDecodeListMalformedFallsBackToEmpty(t *testing.T) {
	if out := decodeList("not json"); len(out) != 0 {
		t.Errorf("decodeList(malformed) = %v, want empty", out)
	}
}

func TestEncodeDecodeMapRoundTrip(t *testing.T) {
	in := map[string]any{"phone": "555-0100", "count": float64(3)}
	out := decodeMap(encodeMap(in))
	if out["phone"] != "555-0100" || out["count"] != float64(3) {
		t.Errorf("got %v, want %v", out, in)
	}
}
