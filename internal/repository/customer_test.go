package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"
	apperrors "github.com/umalmyha/clientes/internal/errors"
	"github.com/umalmyha/clientes/internal/metrics"
	"github.com/umalmyha/clientes/internal/model"
	"github.com/umalmyha/clientes/pkg/docstore"
)

const (
	testID    = "64f1a2b3c4d5e6f708192a3b"
	testEmail = "e@x.com"
)

type remoteCall struct {
	method string
	name   string
	filter map[string]string
	data   map[string]any
}

type remoteReply struct {
	status int
	body   string
}

type customerRepositoryTestSuite struct {
	suite.Suite
	server  *httptest.Server
	repo    CustomerRepository
	metrics *metrics.Metrics
	calls   []remoteCall
	replies map[string]remoteReply
	listing string
}

func (s *customerRepositoryTestSuite) SetupTest() {
	s.calls = nil
	s.replies = make(map[string]remoteReply)
	s.listing = fmt.Sprintf(`{"documentos":[
		{"_id":{"$oid":"aaaaaaaaaaaaaaaaaaaaaaaa"},"nombre":"Luis","correo":"luis@x.com"},
		{"_id":{"$oid":%q},"nombre":"Ana","edad":30,"correo":%q}
	]}`, testID, testEmail)

	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := remoteCall{method: r.Method, name: r.URL.Query().Get("nombre")}

		var body struct {
			Filter map[string]string `json:"filtro"`
			Data   map[string]any    `json:"datos"`
		}
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &body)
		}
		call.filter = body.Filter
		call.data = body.Data
		s.calls = append(s.calls, call)

		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(s.listing))
			return
		}

		reply, ok := s.replies[s.replyKey(r.Method, body.Filter)]
		if !ok {
			reply = remoteReply{status: http.StatusOK, body: `{}`}
		}
		w.WriteHeader(reply.status)
		_, _ = w.Write([]byte(reply.body))
	}))

	logger, _ := test.NewNullLogger()
	s.metrics = metrics.New(prometheus.NewRegistry())
	client := docstore.NewClient(s.server.URL, "clientes", docstore.WithLogger(logger), docstore.WithObserver(s.metrics))
	s.repo = NewRemoteCustomerRepository(client, s.metrics)
}

func (s *customerRepositoryTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *customerRepositoryTestSuite) replyKey(method string, filter map[string]string) string {
	if v, ok := filter[fieldID]; ok {
		return method + " _id=" + v
	}
	if v, ok := filter[fieldEmail]; ok {
		return method + " correo=" + v
	}
	return method
}

func (s *customerRepositoryTestSuite) reply(method, filterKey, filterValue, body string) {
	s.replies[method+" "+filterKey+"="+filterValue] = remoteReply{status: http.StatusOK, body: body}
}

func (s *customerRepositoryTestSuite) methods() []string {
	methods := make([]string, 0, len(s.calls))
	for _, c := range s.calls {
		methods = append(methods, c.method)
	}
	return methods
}

func (s *customerRepositoryTestSuite) TestFindAll() {
	ctx := context.Background()

	s.T().Log("customers are decoded and email is kept internally")
	{
		customers, err := s.repo.FindAll(ctx, "Ana")
		s.Require().NoError(err, "no error must be raised")
		s.Require().Len(customers, 2)
		s.Require().Equal("Ana", s.calls[0].name, "name filter must be forwarded")
		s.Require().Equal(testEmail, customers[1].Email)
		s.Require().Equal(30, *customers[1].Age)
	}

	s.T().Log("listing without documents array is empty, not an error")
	{
		s.listing = `{"mensaje":"sin datos"}`
		customers, err := s.repo.FindAll(ctx, "")
		s.Require().NoError(err, "no error must be raised")
		s.Require().Empty(customers)
	}

	s.T().Log("listing which is not JSON is operational error")
	{
		s.listing = `<html>oops</html>`
		_, err := s.repo.FindAll(ctx, "")
		var opErr *apperrors.OperationalErr
		s.Require().ErrorAs(err, &opErr, "error must be operational")
	}
}

func (s *customerRepositoryTestSuite) TestInsert() {
	ok, err := s.repo.Insert(context.Background(), "Ana", 0)
	s.Require().NoError(err, "no error must be raised")
	s.Require().True(ok, "2xx must be reported as success")
	s.Require().Equal(map[string]any{"nombre": "Ana", "edad": 0.0}, s.calls[0].data, "zero age must still be sent")
}

func (s *customerRepositoryTestSuite) TestByNameUsesStatusOnly() {
	ctx := context.Background()
	s.replies[http.MethodPut] = remoteReply{status: http.StatusOK, body: `{"modifiedCount":0}`}
	s.replies[http.MethodDelete] = remoteReply{status: http.StatusBadRequest, body: `{"error":"x"}`}

	s.T().Log("update by name is successful for 2xx regardless of counts")
	{
		city := "Heredia"
		ok, err := s.repo.UpdateByName(ctx, "Ana", model.CustomerPatch{City: &city})
		s.Require().NoError(err, "no error must be raised")
		s.Require().True(ok)
		s.Require().Equal(map[string]string{"nombre": "Ana"}, s.calls[0].filter)
		s.Require().Equal(map[string]any{"ciudad": "Heredia"}, s.calls[0].data, "absent fields must be omitted")
	}

	s.T().Log("delete by name is unsuccessful for non-2xx")
	{
		ok, err := s.repo.DeleteByName(ctx, "Ana")
		s.Require().NoError(err, "no error must be raised")
		s.Require().False(ok)
	}
}

func (s *customerRepositoryTestSuite) TestUpdateByIDValidation() {
	ctx := context.Background()
	name := "X"

	s.T().Log("malformed id is rejected before any network call")
	{
		_, err := s.repo.UpdateByID(ctx, "not-24-hex", model.CustomerPatch{Name: &name})
		var vErr *apperrors.ValidationErr
		s.Require().ErrorAs(err, &vErr, "error must be validation error")
		s.Require().Empty(s.calls, "no request must be sent")
	}

	s.T().Log("patch with only blank fields is rejected before any network call")
	{
		blank := "   "
		_, err := s.repo.UpdateByID(ctx, testID, model.CustomerPatch{Name: &blank})
		var vErr *apperrors.ValidationErr
		s.Require().ErrorAs(err, &vErr, "error must be validation error")
		s.Require().Empty(s.calls, "no request must be sent")
	}
}

func (s *customerRepositoryTestSuite) TestUpdateByIDConfirmedByPrimaryTier() {
	s.reply(http.MethodPut, fieldID, testID, `{"modifiedCount":1}`)
	name := " Ana Mora "

	ok, err := s.repo.UpdateByID(context.Background(), testID, model.CustomerPatch{Name: &name})
	s.Require().NoError(err, "no error must be raised")
	s.Require().True(ok)
	s.Require().Equal([]string{http.MethodPut}, s.methods(), "no fallback must be attempted")
	s.Require().Equal(map[string]any{"nombre": "Ana Mora"}, s.calls[0].data)
}

func (s *customerRepositoryTestSuite) TestUpdateByIDFallsBackToEmail() {
	s.reply(http.MethodPut, fieldID, testID, `{"modifiedCount":0}`)
	s.reply(http.MethodPut, fieldEmail, testEmail, `{"modifiedCount":1}`)
	age := 31

	ok, err := s.repo.UpdateByID(context.Background(), testID, model.CustomerPatch{Age: &age})
	s.Require().NoError(err, "no error must be raised")
	s.Require().True(ok)
	s.Require().Equal([]string{http.MethodPut, http.MethodGet, http.MethodPut}, s.methods())
	s.Require().Empty(s.calls[1].name, "fallback listing must be unfiltered")
	s.Require().Equal(map[string]string{fieldEmail: testEmail}, s.calls[2].filter)
	s.Require().Equal(s.calls[0].data, s.calls[2].data, "same payload must be reused")
	s.Require().Equal(1.0, testutil.ToFloat64(s.metrics.MutationOutcome.WithLabelValues(operationUpdate, metrics.TierEmail, "confirmed_count")))
}

func (s *customerRepositoryTestSuite) TestUpdateByIDMatchesIDIgnoringCase() {
	s.reply(http.MethodPut, fieldEmail, testEmail, `{"nModified":1}`)
	age := 31

	ok, err := s.repo.UpdateByID(context.Background(), "64F1A2B3C4D5E6F708192A3B", model.CustomerPatch{Age: &age})
	s.Require().NoError(err, "no error must be raised")
	s.Require().True(ok)
}

func (s *customerRepositoryTestSuite) TestUpdateByIDDocumentNotLocatable() {
	s.reply(http.MethodPut, fieldID, testID, `{"modifiedCount":0}`)
	s.listing = `{"documentos":[{"_id":{"$oid":"aaaaaaaaaaaaaaaaaaaaaaaa"},"correo":"luis@x.com"}]}`
	age := 31

	ok, err := s.repo.UpdateByID(context.Background(), testID, model.CustomerPatch{Age: &age})
	s.Require().False(ok)

	var opErr *apperrors.OperationalErr
	s.Require().ErrorAs(err, &opErr, "error must be operational")
	s.Require().Contains(err.Error(), "could not be located")
	s.Require().Equal([]string{http.MethodPut, http.MethodGet}, s.methods(), "secondary tier must not be attempted")
}

func (s *customerRepositoryTestSuite) TestUpdateByIDDocumentWithoutEmail() {
	s.listing = fmt.Sprintf(`{"documentos":[{"_id":{"$oid":%q},"nombre":"Ana"}]}`, testID)
	age := 31

	_, err := s.repo.UpdateByID(context.Background(), testID, model.CustomerPatch{Age: &age})
	var opErr *apperrors.OperationalErr
	s.Require().ErrorAs(err, &opErr, "error must be operational")
	s.Require().Equal([]string{http.MethodPut, http.MethodGet}, s.methods(), "secondary tier must not be attempted")
}

func (s *customerRepositoryTestSuite) TestUpdateByIDBothTiersUnconfirmed() {
	s.reply(http.MethodPut, fieldEmail, testEmail, `{"modifiedCount":0,"detalle":"nada"}`)
	age := 31

	ok, err := s.repo.UpdateByID(context.Background(), testID, model.CustomerPatch{Age: &age})
	s.Require().False(ok)

	var opErr *apperrors.OperationalErr
	s.Require().ErrorAs(err, &opErr, "error must be operational")
	s.Require().Equal(`{"modifiedCount":0,"detalle":"nada"}`, opErr.Response(), "raw body must be kept for diagnostics")
}

func (s *customerRepositoryTestSuite) TestUpdateByIDFirstCountFieldWins() {
	s.reply(http.MethodPut, fieldID, testID, `{"modifiedCount":0,"nModified":1}`)
	s.reply(http.MethodPut, fieldEmail, testEmail, `{"modifiedCount":1}`)
	age := 31

	ok, err := s.repo.UpdateByID(context.Background(), testID, model.CustomerPatch{Age: &age})
	s.Require().NoError(err, "no error must be raised")
	s.Require().True(ok)
	s.Require().Len(s.calls, 3, "primary tier must be unconfirmed, so fallback runs")
}

func (s *customerRepositoryTestSuite) TestUpdateByIDAcknowledgedMatch() {
	s.reply(http.MethodPut, fieldID, testID, `{"acknowledged":true,"matchedCount":1}`)
	city := "Limón"

	ok, err := s.repo.UpdateByID(context.Background(), testID, model.CustomerPatch{City: &city})
	s.Require().NoError(err, "no error must be raised")
	s.Require().True(ok)
	s.Require().Len(s.calls, 1, "acknowledged match must confirm primary tier")
}

func (s *customerRepositoryTestSuite) TestDeleteByID() {
	ctx := context.Background()

	s.T().Log("malformed id is rejected before any network call")
	{
		_, err := s.repo.DeleteByID(ctx, "zz")
		var vErr *apperrors.ValidationErr
		s.Require().ErrorAs(err, &vErr, "error must be validation error")
		s.Require().Empty(s.calls)
	}

	s.T().Log("acknowledged match doesn't confirm delete, email tier confirms it")
	{
		s.reply(http.MethodDelete, fieldID, testID, `{"acknowledged":true,"matchedCount":1}`)
		s.reply(http.MethodDelete, fieldEmail, testEmail, `{"eliminados":1}`)

		ok, err := s.repo.DeleteByID(ctx, testID)
		s.Require().NoError(err, "no error must be raised")
		s.Require().True(ok)
		s.Require().Equal([]string{http.MethodDelete, http.MethodGet, http.MethodDelete}, s.methods())
		s.Require().Nil(s.calls[2].data, "delete must not carry data")
	}
}

func (s *customerRepositoryTestSuite) TestTransportFailure() {
	s.server.Close()

	_, err := s.repo.DeleteByID(context.Background(), testID)
	var tErr *apperrors.TransportErr
	s.Require().ErrorAs(err, &tErr, "error must be transport error")
}

// start customer repository test suite
func TestCustomerRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(customerRepositoryTestSuite))
}
