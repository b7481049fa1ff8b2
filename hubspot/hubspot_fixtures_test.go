package hubspot

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/silinternational/category-sync/internal"
)

const (
	testToken          = "pat-na1-test"
	testCategoryType   = "2-1234567"
	testSearchPath     = "/crm/v3/objects/2-1234567/search"
	testPropertyPath   = "/crm/v3/properties/products/product_category"
	testNameProperty   = "product_category"
	testIDProperty     = "product_category_id"
	notAuthorizedJSON  = `{"status":"error","message":"Authentication credentials not found.","category":"INVALID_AUTHENTICATION"}`
	serverErrorJSON    = `{"status":"error","message":"internal error","category":"INTERNAL_ERROR"}`
	propertyMissingMsg = `{"status":"error","message":"Unable to find property product_category","category":"OBJECT_NOT_FOUND"}`
)

const schemasJSON = `{
  "results": [
    {
      "id": "1111",
      "name": "vendors",
      "objectTypeId": "2-7654321",
      "labels": {"singular": "Vendor", "plural": "Vendors"}
    },
    {
      "id": "2222",
      "name": "product_categories",
      "objectTypeId": "2-1234567",
      "labels": {"singular": "Product category", "plural": "Product categories"}
    }
  ]
}`

const searchPage1JSON = `{
  "total": 5,
  "results": [
    {"id": "501", "properties": {"hs_object_id": "501", "product_category": "Shoes", "product_category_id": "1"}},
    {"id": "502", "properties": {"hs_object_id": "502", "product_category": "Hats", "product_category_id": "2"}}
  ],
  "paging": {"next": {"after": "2", "link": "?after=2"}}
}`

const searchPage2JSON = `{
  "total": 5,
  "results": [
    {"id": "503", "properties": {"hs_object_id": "503", "product_category": "Belts", "product_category_id": "3"}},
    {"id": "504", "properties": {"hs_object_id": "504", "product_category": "Shoes", "product_category_id": "4"}}
  ],
  "paging": {"next": {"after": "4"}}
}`

const searchPage3JSON = `{
  "total": 5,
  "results": [
    {"id": "505", "properties": {"hs_object_id": "505", "product_category": "Socks", "product_category_id": "5"}},
    {"id": "506", "properties": {"hs_object_id": "506", "product_category": null, "product_category_id": "6"}},
    {"id": "507", "properties": {"hs_object_id": "507", "product_category": "Gloves"}}
  ]
}`

const searchSingleJSON = `{
  "total": 1,
  "results": [
    {"id": "502", "properties": {"product_category": "Caps", "product_category_id": "2"}}
  ]
}`

const searchNullNameJSON = `{
  "total": 1,
  "results": [
    {"id": "502", "properties": {"product_category": null, "product_category_id": "2"}}
  ]
}`

const searchEmptyJSON = `{"total": 0, "results": []}`

const enumerationPropertyJSON = `{
  "name": "product_category",
  "label": "Product category",
  "type": "enumeration",
  "fieldType": "select",
  "groupName": "productinformation",
  "options": [
    {"label": "Shoes", "value": "1", "displayOrder": 0, "hidden": false},
    {"label": "Hats", "value": "2", "displayOrder": 1, "hidden": true}
  ]
}`

const stringPropertyJSON = `{
  "name": "product_category",
  "label": "Product category",
  "type": "string",
  "fieldType": "text",
  "options": []
}`

type fakeEndpoint struct {
	status       int
	responseBody string
	failFirst    int
}

type recordedRequest struct {
	Method string
	Path   string
	Body   string
}

type fakeServer struct {
	*httptest.Server
	mu        sync.Mutex
	endpoints map[string]fakeEndpoint
	calls     map[string]int
	requests  []recordedRequest
}

// endpointKey is "METHOD /path", with " after=CURSOR" added for searches past the first page
func endpointKey(req *http.Request, body []byte) string {
	key := req.Method + " " + req.URL.Path
	if req.Method == http.MethodPost {
		var search SearchRequest
		if err := json.Unmarshal(body, &search); err == nil && search.After != "" {
			key += " after=" + search.After
		}
	}
	return key
}

func getTestServer(t *testing.T, endpoints map[string]fakeEndpoint) *fakeServer {
	f := &fakeServer{
		endpoints: endpoints,
		calls:     map[string]int{},
	}

	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		bodyBytes, _ := io.ReadAll(req.Body)
		key := endpointKey(req, bodyBytes)

		f.mu.Lock()
		f.calls[key]++
		call := f.calls[key]
		f.requests = append(f.requests, recordedRequest{Method: req.Method, Path: req.URL.Path, Body: string(bodyBytes)})
		f.mu.Unlock()

		w.Header().Set("content-type", "application/json")

		if req.Header.Get("Authorization") != "Bearer "+testToken {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, notAuthorizedJSON)
			return
		}

		e, ok := f.endpoints[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"status":"error","message":"no fake endpoint for `+key+`"}`)
			return
		}

		if call <= e.failFirst {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = io.WriteString(w, serverErrorJSON)
			return
		}

		w.WriteHeader(e.status)
		_, _ = io.WriteString(w, e.responseBody)
	}))
	t.Cleanup(f.Close)

	return f
}

func (f *fakeServer) callCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *fakeServer) requestBodies(method, path string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	var bodies []string
	for _, r := range f.requests {
		if r.Method == method && r.Path == path {
			bodies = append(bodies, r.Body)
		}
	}
	return bodies
}

func newTestHubSpot(baseURL, token string) *HubSpot {
	config := internal.NewConfig().HubSpot
	config.AccessToken = token
	config.BaseURL = baseURL
	config.MaxTries = 2

	h := NewHubSpot(config, zap.NewNop())
	h.InitialInterval = time.Millisecond
	return h
}

func categoryQuery(targetID string) internal.CategoryQuery {
	return internal.CategoryQuery{
		ObjectType:   testCategoryType,
		NameProperty: testNameProperty,
		IDProperty:   testIDProperty,
		TargetID:     targetID,
	}
}
