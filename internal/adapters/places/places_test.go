package places

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jimmysun0815/snow-api/internal/httpclient"
	"github.com/jimmysun0815/snow-api/internal/types"
)

func TestCollect_TextSearchThenDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "textsearch") {
			w.Write([]byte(`{"status":"OK","results":[{"place_id":"abc123"}]}`))
			return
		}
		w.Write([]byte(`{"status":"OK","result":{"formatted_address":"1 Resort Rd, Alta, UT 84092","formatted_phone_number":"(801) 555-0100","website":"https://example.com","address_components":[{"long_name":"Alta","types":["locality"]},{"long_name":"84092","types":["postal_code"]}]}}`))
	}))
	defer srv.Close()

	fetcher := httpclient.New(nil)
	a := New(fetcher, "test-key", WithEndpoints(srv.URL+"/textsearch", srv.URL+"/details"))

	result, err := a.Collect(context.Background(), types.ResortDescriptor{Name: "Alta", Location: "Utah"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.City != "Alta" || result.ZipCode != "84092" {
		t.Errorf("unexpected city/zip: %+v", result)
	}
	if result.Phone != "(801) 555-0100" {
		t.Errorf("unexpected phone: %s", result.Phone)
	}
}

func TestCollect_NoMatchIsNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	}))
	defer srv.Close()

	fetcher := httpclient.New(nil)
	a := New(fetcher, "test-key", WithEndpoints(srv.URL, srv.URL))

	_, err := a.Collect(context.Background(), types.ResortDescriptor{Name: "Nowhere", Location: "Unknown"})
	if err == nil {
		t.Fatal("expected error for zero results")
	}
	te, ok := httpclient.AsTypedError(err)
	if !ok || te.Type != httpclient.ErrNoData {
		t.Fatalf("expected NO_DATA typed error, got %v", err)
	}
}
