package recordstore

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"sherialink/internal/domain"
	"sherialink/internal/platform/config"
	"sherialink/internal/platform/metrics"
	"sherialink/internal/upstream"
	dErrors "sherialink/pkg/domain-errors"
	"sherialink/pkg/platform/sentinel"
)

type ClientSuite struct {
	suite.Suite
	ctx     context.Context
	mux     *http.ServeMux
	server  *httptest.Server
	client  *Client
	metrics *metrics.Metrics
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.ctx = context.Background()
	s.mux = http.NewServeMux()
	s.server = httptest.NewServer(s.mux)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.client = New(config.RecordStore{BaseURL: s.server.URL + "/api/", Timeout: time.Second}, WithMetrics(s.metrics))
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientSuite) TestCreateCase() {
	createdAt := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	s.mux.HandleFunc("POST /api/cases", func(w http.ResponseWriter, r *http.Request) {
		s.Equal("application/json", r.Header.Get("Content-Type"))
		var body map[string]any
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&body))
		s.Equal("Jane Wanjiku", body["name"])
		s.Equal("0712345678", body["phoneNumber"])
		s.Equal("Land", body["caseType"])
		s.Equal("Land Dispute", body["description"])
		s.Equal("2024-02-28", body["date"])
		s.Equal("Pending", body["status"])
		s.Equal("2024-03-01T09:30:00Z", body["createdAt"])
		s.NotContains(body, "_id")

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"_id":"65f0c1","name":"Jane Wanjiku","county":"Nairobi","status":"Pending","date":"2024-02-28T00:00:00.000Z"}`)
	})

	record, err := s.client.CreateCase(s.ctx, domain.NewCase{
		Name:        "Jane Wanjiku",
		PhoneNumber: "0712345678",
		County:      "Nairobi",
		CaseType:    domain.CaseTypeLand,
		Description: domain.CategoryLandDispute,
		Date:        time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC),
		Status:      domain.CaseStatusPending,
		CreatedAt:   createdAt,
	})
	s.Require().NoError(err)
	s.Equal("65f0c1", record.ID)
	s.Equal("2024-02-28", record.Date)
	s.Equal(domain.CaseStatusPending, record.Status)
	s.Equal(createdAt, record.CreatedAt)
	s.Equal(1, testutil.CollectAndCount(s.metrics.RecordStoreLatency))
}

func (s *ClientSuite) TestCreateCaseIDOnlyResponseKeepsSubmittedFields() {
	s.mux.HandleFunc("POST /api/cases", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"_id":"abc123"}`)
	})
	in := domain.NewCase{
		Name:        "Jane Wanjiku",
		PhoneNumber: "0712345678",
		County:      "Nairobi",
		CaseType:    domain.CaseTypeLand,
		Description: domain.CategoryLandDispute,
		Date:        time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC),
		Status:      domain.CaseStatusPending,
		CreatedAt:   time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
	}

	record, err := s.client.CreateCase(s.ctx, in)
	s.Require().NoError(err)
	s.Equal(domain.CaseReport{
		ID:          "abc123",
		Name:        "Jane Wanjiku",
		PhoneNumber: "0712345678",
		County:      "Nairobi",
		CaseType:    domain.CaseTypeLand,
		Description: domain.CategoryLandDispute,
		Date:        "2024-02-28",
		Status:      domain.CaseStatusPending,
		CreatedAt:   in.CreatedAt,
	}, record)
}

func (s *ClientSuite) TestCreateCaseWithoutIDIsBadData() {
	s.mux.HandleFunc("POST /api/cases", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"name":"x"}`)
	})

	_, err := s.client.CreateCase(s.ctx, domain.NewCase{Name: "x"})
	s.Require().Error(err)
	s.Equal(upstream.CategoryBadData, upstream.CategoryOf(err))
}

func (s *ClientSuite) TestCreateCaseServerError() {
	s.mux.HandleFunc("POST /api/cases", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database down", http.StatusInternalServerError)
	})

	_, err := s.client.CreateCase(s.ctx, domain.NewCase{Name: "x"})
	s.Require().Error(err)
	s.Equal(upstream.CategoryOutage, upstream.CategoryOf(err))
	s.Contains(err.Error(), "database down")
}

func (s *ClientSuite) TestTimeout() {
	release := make(chan struct{})
	s.mux.HandleFunc("GET /api/cases", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	client := New(config.RecordStore{BaseURL: s.server.URL + "/api", Timeout: 20 * time.Millisecond})
	_, err := client.ListCases(s.ctx)
	s.Require().Error(err)
	s.Equal(upstream.CategoryTimeout, upstream.CategoryOf(err))
	s.ErrorIs(err, sentinel.ErrTimeout)
}

func (s *ClientSuite) TestListCasesAcceptsBothIdentifierFields() {
	s.mux.HandleFunc("GET /api/cases", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[
			{"_id":"a1","county":"Nairobi","status":"Pending","createdAt":"2024-01-05T10:00:00.000Z"},
			{"id":"b2","county":"Mombasa","status":"Resolved"},
			{"county":"Kisumu"}
		]`)
	})

	records, err := s.client.ListCases(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 3)
	s.Equal("a1", records[0].ID)
	s.Equal(time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC), records[0].CreatedAt)
	s.Equal("b2", records[1].ID)
	s.True(records[1].CreatedAt.IsZero())
	s.Empty(records[2].ID)
}

func (s *ClientSuite) TestListCasesDataEnvelope() {
	s.mux.HandleFunc("GET /api/cases", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":[{"_id":"a1"}]}`)
	})

	records, err := s.client.ListCases(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal("a1", records[0].ID)
}

func (s *ClientSuite) TestListCasesOddRecordsDoNotFailTheList() {
	s.mux.HandleFunc("GET /api/cases", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[
			{"_id":"a1","county":"Nairobi","phoneNumber":"0712345678","status":"Pending"},
			{"_id":"a2","county":"Mombasa","phoneNumber":712345678,"status":"Resolved","caseType":null,"date":{"$date":"x"}},
			42,
			"stray"
		]`)
	})

	records, err := s.client.ListCases(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 4)
	s.Equal("0712345678", records[0].PhoneNumber)
	s.Equal("a2", records[1].ID)
	s.Equal("712345678", records[1].PhoneNumber)
	s.Equal(domain.CaseStatusResolved, records[1].Status)
	s.Empty(records[1].CaseType)
	s.Empty(records[1].Date)
	s.Equal(domain.CaseReport{}, records[2])
	s.Equal(domain.CaseReport{}, records[3])
}

func (s *ClientSuite) TestListCasesMalformedBody() {
	s.mux.HandleFunc("GET /api/cases", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `not json`)
	})

	_, err := s.client.ListCases(s.ctx)
	s.Equal(upstream.CategoryBadData, upstream.CategoryOf(err))
}

func (s *ClientSuite) TestUpdateCaseStatus() {
	s.mux.HandleFunc("PATCH /api/cases/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		s.Equal("a1", r.PathValue("id"))
		var body statusRequest
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&body))
		s.Equal("In Progress", body.Status)
		_, _ = io.WriteString(w, `{"message":"updated"}`)
	})

	record, err := s.client.UpdateCaseStatus(s.ctx, "a1", "in progress")
	s.Require().NoError(err)
	s.Equal("a1", record.ID)
	s.Equal(domain.CaseStatusInProgress, record.Status)
}

func (s *ClientSuite) TestUpdateCaseStatusRejectsUnknownStatusWithoutCalling() {
	called := false
	s.mux.HandleFunc("PATCH /api/cases/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := s.client.UpdateCaseStatus(s.ctx, "a1", "Closed")
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = s.client.UpdateCaseStatus(s.ctx, " ", domain.CaseStatusResolved)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	s.False(called)
}

func (s *ClientSuite) TestUpdateCaseStatusNotFound() {
	s.mux.HandleFunc("PATCH /api/cases/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Case not found"}`, http.StatusNotFound)
	})

	_, err := s.client.UpdateCaseStatus(s.ctx, "missing", domain.CaseStatusResolved)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *ClientSuite) TestCreateProfileSendsCredentialNotEchoed() {
	registered := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	s.mux.HandleFunc("POST /api/profiles", func(w http.ResponseWriter, r *http.Request) {
		var body createProfileRequest
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&body))
		s.Equal("$2a$10$hash", body.Password)
		s.Equal(30, body.Age)
		s.Equal("Active", body.Status)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"_id":"p1","name":"Otieno","email":"o@example.com","age":"30","password":"$2a$10$hash"}`)
	})

	record, err := s.client.CreateProfile(s.ctx, domain.NewProfile{
		Name:             "Otieno",
		Email:            "o@example.com",
		PhoneNumber:      "0712345678",
		Age:              30,
		Password:         "$2a$10$hash",
		RegistrationDate: registered,
		Status:           domain.ProfileStatusActive,
	})
	s.Require().NoError(err)
	s.Equal("p1", record.ID)
	s.Equal(30, record.Age)
	s.Empty(record.Password)
	s.Equal(registered, record.RegistrationDate)
	s.Equal(domain.ProfileStatusActive, record.Status)
}

func (s *ClientSuite) TestListProfilesAndMediations() {
	s.mux.HandleFunc("GET /api/profiles", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"_id":"p1","name":"A","age":44},{"_id":"p2","name":"B","age":null}]`)
	})
	s.mux.HandleFunc("GET /api/mediations", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"_id":"m1","county":"Nakuru","reason":"Boundary","date":"2024-02-01T00:00:00Z","phoneNumber":"0722000000"}]`)
	})

	profiles, err := s.client.ListProfiles(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(profiles, 2)
	s.Equal(44, profiles[0].Age)
	s.Zero(profiles[1].Age)

	mediations, err := s.client.ListMediations(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(mediations, 1)
	s.Equal(domain.MediationRecord{ID: "m1", County: "Nakuru", Reason: "Boundary", Date: "2024-02-01", PhoneNumber: "0722000000"}, mediations[0])
}

func (s *ClientSuite) TestLogin() {
	s.mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds domain.Credentials
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&creds))
		if creds.Password != "secret1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = io.WriteString(w, `{"token":"tok","user":{"email":"a@b.co"}}`)
	})

	session, err := s.client.Login(s.ctx, domain.Credentials{Email: "a@b.co", Password: "secret1"})
	s.Require().NoError(err)
	s.Equal("tok", session.Token)
	s.Contains(session.Payload, "user")
	s.NotContains(session.Payload, "token")

	_, err = s.client.Login(s.ctx, domain.Credentials{Email: "a@b.co", Password: "wrong"})
	s.Equal(upstream.CategoryAuthentication, upstream.CategoryOf(err))
}

func TestCalendarDate(t *testing.T) {
	assert.Equal(t, "2024-03-01", calendarDate("2024-03-01T00:00:00.000Z"))
	assert.Equal(t, "2024-03-01", calendarDate("2024-03-01"))
	assert.Equal(t, "March 1st", calendarDate("March 1st"))
}

func TestFlexInt(t *testing.T) {
	var v struct {
		Age flexInt `json:"age"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"age":"27"}`), &v))
	assert.Equal(t, flexInt(27), v.Age)
	require.NoError(t, json.Unmarshal([]byte(`{"age":27}`), &v))
	assert.Equal(t, flexInt(27), v.Age)
	require.NoError(t, json.Unmarshal([]byte(`{"age":"n/a"}`), &v))
	assert.Equal(t, flexInt(0), v.Age)
}
