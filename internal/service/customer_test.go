package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	apperrors "github.com/umalmyha/clientes/internal/errors"
	"github.com/umalmyha/clientes/internal/model"
	rpsMocks "github.com/umalmyha/clientes/internal/repository/mocks"
)

type customerTestData struct {
	ctx      context.Context
	id       string
	customer *model.Customer
}

type customerServiceTestSuite struct {
	suite.Suite
	customerSvc     CustomerService
	customerRpsMock *rpsMocks.CustomerRepository
	testData        *customerTestData
}

func (s *customerServiceTestSuite) SetupSuite() {
	id := "64f1a2b3c4d5e6f708192a3b"
	age := 34
	city := "Alajuela"

	s.testData = &customerTestData{
		ctx: context.Background(),
		id:  id,
		customer: &model.Customer{
			ID:    &id,
			Name:  "Ana",
			Age:   &age,
			City:  &city,
			Email: "ana@somemail.com",
		},
	}
}

func (s *customerServiceTestSuite) SetupTest() {
	s.customerRpsMock = rpsMocks.NewCustomerRepository(s.T())
	s.customerSvc = NewCustomerService(s.customerRpsMock)
}

func (s *customerServiceTestSuite) TestListTrimsFilter() {
	ctx := s.testData.ctx
	customers := []*model.Customer{s.testData.customer}

	s.customerRpsMock.On("FindAll", ctx, "Ana").Return(customers, nil).Once()

	s.T().Log("name filter must be trimmed before reaching repository")
	{
		list, err := s.customerSvc.List(ctx, "  Ana ")
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(customers, list)
	}
}

func (s *customerServiceTestSuite) TestRegisterValidation() {
	ctx := s.testData.ctx

	s.T().Log("empty name is rejected")
	{
		err := s.customerSvc.Register(ctx, "", 5)
		s.Assert().IsType(&apperrors.ValidationErr{}, err, "error must be validation error")
	}

	s.T().Log("whitespace name is rejected")
	{
		err := s.customerSvc.Register(ctx, "   ", 5)
		s.Assert().IsType(&apperrors.ValidationErr{}, err, "error must be validation error")
	}

	s.T().Log("negative age is rejected")
	{
		err := s.customerSvc.Register(ctx, "Ana", -1)
		s.Assert().IsType(&apperrors.ValidationErr{}, err, "error must be validation error")
	}

	s.customerRpsMock.AssertNotCalled(s.T(), "Insert", mock.Anything, mock.Anything, mock.Anything)
}

func (s *customerServiceTestSuite) TestRegisterSuccessfully() {
	ctx := s.testData.ctx

	s.customerRpsMock.On("Insert", ctx, "Ana", 0).Return(true, nil).Once()

	s.T().Log("zero age is valid and name is trimmed")
	{
		err := s.customerSvc.Register(ctx, " Ana ", 0)
		s.Assert().NoError(err, "no error must be raised")
	}
}

func (s *customerServiceTestSuite) TestRegisterNotAccepted() {
	ctx := s.testData.ctx

	s.customerRpsMock.On("Insert", ctx, "Ana", 3).Return(false, nil).Once()

	s.T().Log("remote store didn't accept insert")
	{
		err := s.customerSvc.Register(ctx, "Ana", 3)
		s.Assert().IsType(&apperrors.OperationalErr{}, err, "error must be operational error")
	}
}

func (s *customerServiceTestSuite) TestUpdateByName() {
	ctx := s.testData.ctx
	newName := " Ana María "
	city := " Cartago "

	s.T().Log("empty filter name is rejected")
	{
		err := s.customerSvc.UpdateByName(ctx, " ", model.CustomerPatch{Name: &newName})
		s.Assert().IsType(&apperrors.ValidationErr{}, err, "error must be validation error")
	}

	s.T().Log("filter and new values are trimmed")
	{
		expectedName := "Ana María"
		expectedCity := "Cartago"
		s.customerRpsMock.On("UpdateByName", ctx, "Ana", model.CustomerPatch{Name: &expectedName, City: &expectedCity}).
			Return(true, nil).Once()

		err := s.customerSvc.UpdateByName(ctx, "Ana ", model.CustomerPatch{Name: &newName, City: &city})
		s.Assert().NoError(err, "no error must be raised")
	}

	s.T().Log("non-success from repository is operational error")
	{
		s.customerRpsMock.On("UpdateByName", ctx, "Luis", model.CustomerPatch{}).Return(false, nil).Once()

		err := s.customerSvc.UpdateByName(ctx, "Luis", model.CustomerPatch{})
		s.Assert().IsType(&apperrors.OperationalErr{}, err, "error must be operational error")
	}
}

func (s *customerServiceTestSuite) TestUpdateByIDPassesThrough() {
	ctx := s.testData.ctx
	id := s.testData.id
	age := 40
	patch := model.CustomerPatch{Age: &age}

	s.T().Log("gateway validation error is surfaced unchanged")
	{
		gwErr := apperrors.NewValidationErr("id", "bad id")
		s.customerRpsMock.On("UpdateByID", ctx, "not-24-hex", patch).Return(false, gwErr).Once()

		err := s.customerSvc.UpdateByID(ctx, "not-24-hex", patch)
		s.Assert().Equal(gwErr, err, "gateway error must be returned as is")
	}

	s.T().Log("gateway operational error keeps its message")
	{
		gwErr := apperrors.NewOperationalErrWithResponse("Remote API did not modify any document.", `{"n":0}`)
		s.customerRpsMock.On("UpdateByID", ctx, id, patch).Return(false, gwErr).Once()

		err := s.customerSvc.UpdateByID(ctx, id, patch)
		s.Assert().EqualError(err, gwErr.Error())
	}

	s.T().Log("confirmed update")
	{
		s.customerRpsMock.On("UpdateByID", ctx, id, patch).Return(true, nil).Once()

		err := s.customerSvc.UpdateByID(ctx, id, patch)
		s.Assert().NoError(err, "no error must be raised")
	}
}

func (s *customerServiceTestSuite) TestDeleteByName() {
	ctx := s.testData.ctx

	s.T().Log("empty name is rejected")
	{
		err := s.customerSvc.DeleteByName(ctx, "")
		s.Assert().IsType(&apperrors.ValidationErr{}, err, "error must be validation error")
	}

	s.T().Log("deleted successfully")
	{
		s.customerRpsMock.On("DeleteByName", ctx, "Ana").Return(true, nil).Once()

		err := s.customerSvc.DeleteByName(ctx, " Ana")
		s.Assert().NoError(err, "no error must be raised")
	}
}

func (s *customerServiceTestSuite) TestDeleteByID() {
	ctx := s.testData.ctx
	id := s.testData.id

	s.T().Log("unconfirmed delete without error becomes operational error")
	{
		s.customerRpsMock.On("DeleteByID", ctx, id).Return(false, nil).Once()

		err := s.customerSvc.DeleteByID(ctx, id)
		s.Assert().IsType(&apperrors.OperationalErr{}, err, "error must be operational error")
	}

	s.T().Log("confirmed delete")
	{
		s.customerRpsMock.On("DeleteByID", ctx, id).Return(true, nil).Once()

		err := s.customerSvc.DeleteByID(ctx, id)
		s.Assert().NoError(err, "no error must be raised")
	}
}

// start customer service test suite
func TestCustomerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(customerServiceTestSuite))
}
