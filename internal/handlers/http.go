package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	apperrors "github.com/umalmyha/clientes/internal/errors"
	"github.com/umalmyha/clientes/internal/middleware"
	"github.com/umalmyha/clientes/internal/model"
	"github.com/umalmyha/clientes/internal/service"
	"github.com/umalmyha/clientes/internal/validation"
)

const (
	msgRegistered     = "Customer registered."
	msgUpdated        = "Customer updated."
	msgDeleted        = "Customer deleted."
	msgRemoteDown     = "Remote API is unavailable, try again later."
	msgListFailed     = "Failed to load customers."
	msgMalformedInput = "Malformed form data."
	msgNothingToApply = "Provide at least one field to update."
)

// ack is the body every mutating action answers with
type ack struct {
	OK  bool   `json:"ok"`
	Msg string `json:"msg"`
}

type newCustomer struct {
	Name string `form:"nombre" validate:"required"`
	Age  int    `form:"edad" validate:"min=0"`
}

// edad is kept as string so that empty field means "leave as is"
type updateByID struct {
	ID      string `form:"id" validate:"required,objectid"`
	NewName string `form:"nombreNuevo"`
	Age     string `form:"edad" validate:"omitempty,number"`
	City    string `form:"ciudad"`
}

func (u *updateByID) normalize() {
	u.ID = strings.TrimSpace(u.ID)
}

type deleteByID struct {
	ID string `form:"id" validate:"required,objectid"`
}

func (d *deleteByID) normalize() {
	d.ID = strings.TrimSpace(d.ID)
}

type updateByName struct {
	Name    string `form:"nombre" validate:"required"`
	NewName string `form:"nombreNuevo"`
	Age     string `form:"edad" validate:"omitempty,number"`
	City    string `form:"ciudad"`
}

type deleteByName struct {
	Name string `form:"nombre" validate:"required"`
}

// CustomerHTTPHandler serves customer pages, fragments and form actions
type CustomerHTTPHandler struct {
	customerSvc service.CustomerService
	development bool
}

// NewCustomerHTTPHandler builds new CustomerHTTPHandler, development enables error details in fragments
func NewCustomerHTTPHandler(customerSvc service.CustomerService, development bool) *CustomerHTTPHandler {
	return &CustomerHTTPHandler{
		customerSvc: customerSvc,
		development: development,
	}
}

// Index renders main page
// @Summary     Customers page
// @Description Renders page with customers listing and forms
// @Tags        pages
// @Produce     html
// @Param       nombre query    string false "Name filter"
// @Success     200    {string} string "HTML page"
// @Router      / [get]
func (h *CustomerHTTPHandler) Index(c echo.Context) error {
	filter := c.QueryParam("nombre")
	page := indexPage{Listing: listingView{Filter: filter}}

	customers, err := h.customerSvc.List(c.Request().Context(), filter)
	if err != nil {
		middleware.Logger(c).WithError(err).Error("failed to load customers for index page")
		page.Failure = h.failure(err)
	} else {
		page.Listing.Customers = rows(customers)
	}

	return c.Render(http.StatusOK, templateIndex, page)
}

// List renders listing fragment
// @Summary     Customers listing
// @Description Renders table fragment with customers, optionally filtered by name
// @Tags        fragments
// @Produce     html
// @Param       nombre query    string false "Name filter"
// @Success     200    {string} string "HTML fragment"
// @Router      /clientes/listado [get]
func (h *CustomerHTTPHandler) List(c echo.Context) error {
	filter := c.QueryParam("nombre")

	customers, err := h.customerSvc.List(c.Request().Context(), filter)
	if err != nil {
		middleware.Logger(c).WithError(err).Error("failed to load customers listing")
		return c.Render(http.StatusOK, templateErrorMini, h.failure(err))
	}

	return c.Render(http.StatusOK, templateListing, listingView{
		Filter:    filter,
		Customers: rows(customers),
	})
}

// InsertForm renders insert form fragment
// @Summary     Insert form
// @Tags        fragments
// @Produce     html
// @Success     200 {string} string "HTML fragment"
// @Router      /clientes/insertar [get]
func (h *CustomerHTTPHandler) InsertForm(c echo.Context) error {
	return c.Render(http.StatusOK, templateInsert, nil)
}

// UpdateDeleteForm renders update/delete forms fragment
// @Summary     Update and delete forms
// @Tags        fragments
// @Produce     html
// @Success     200 {string} string "HTML fragment"
// @Router      /clientes/actualizar-eliminar [get]
func (h *CustomerHTTPHandler) UpdateDeleteForm(c echo.Context) error {
	return c.Render(http.StatusOK, templateUpdateDelete, nil)
}

// Insert registers new customer
// @Summary     Register customer
// @Description Inserts new customer with name and age
// @Tags        customers
// @Accept      x-www-form-urlencoded
// @Produce     json
// @Param       nombre formData string true "Name"
// @Param       edad   formData int    true "Age"
// @Success     200    {object} ack
// @Failure     400    {object} ack
// @Failure     502    {object} ack
// @Router      /clientes/insertar [post]
func (h *CustomerHTTPHandler) Insert(c echo.Context) error {
	var nc newCustomer
	if err := h.bind(c, &nc); err != nil {
		return h.reject(c, err)
	}

	if err := h.customerSvc.Register(c.Request().Context(), nc.Name, nc.Age); err != nil {
		return h.reject(c, err)
	}

	return c.JSON(http.StatusOK, &ack{OK: true, Msg: msgRegistered})
}

// UpdateByID updates customer located by id
// @Summary     Update customer by id
// @Description Updates provided fields, falls back to email when remote API ignores id filter
// @Tags        customers
// @Accept      x-www-form-urlencoded
// @Produce     json
// @Param       id          formData string true  "Customer ObjectId"
// @Param       nombreNuevo formData string false "New name"
// @Param       edad        formData int    false "New age"
// @Param       ciudad      formData string false "New city"
// @Success     200         {object} ack
// @Failure     400         {object} ack
// @Failure     502         {object} ack
// @Router      /clientes/actualizar-id [post]
func (h *CustomerHTTPHandler) UpdateByID(c echo.Context) error {
	var upd updateByID
	if err := h.bind(c, &upd); err != nil {
		return h.reject(c, err)
	}

	patch, err := formPatch(upd.NewName, upd.Age, upd.City)
	if err != nil {
		return h.reject(c, err)
	}

	if patch.IsEmpty() {
		return c.JSON(http.StatusBadRequest, &ack{Msg: msgNothingToApply})
	}

	if err := h.customerSvc.UpdateByID(c.Request().Context(), upd.ID, patch); err != nil {
		return h.reject(c, err)
	}

	return c.JSON(http.StatusOK, &ack{OK: true, Msg: msgUpdated})
}

// DeleteByID deletes customer located by id
// @Summary     Delete customer by id
// @Description Deletes customer, falls back to email when remote API ignores id filter
// @Tags        customers
// @Accept      x-www-form-urlencoded
// @Produce     json
// @Param       id  formData string true "Customer ObjectId"
// @Success     200 {object} ack
// @Failure     400 {object} ack
// @Failure     502 {object} ack
// @Router      /clientes/eliminar-id [post]
func (h *CustomerHTTPHandler) DeleteByID(c echo.Context) error {
	var del deleteByID
	if err := h.bind(c, &del); err != nil {
		return h.reject(c, err)
	}

	if err := h.customerSvc.DeleteByID(c.Request().Context(), del.ID); err != nil {
		return h.reject(c, err)
	}

	return c.JSON(http.StatusOK, &ack{OK: true, Msg: msgDeleted})
}

// UpdateByName updates customers matching exact name
// @Summary     Update customer by name
// @Tags        customers
// @Accept      x-www-form-urlencoded
// @Produce     json
// @Param       nombre      formData string true  "Current name"
// @Param       nombreNuevo formData string false "New name"
// @Param       edad        formData int    false "New age"
// @Param       ciudad      formData string false "New city"
// @Success     200         {object} ack
// @Failure     400         {object} ack
// @Failure     502         {object} ack
// @Router      /clientes/actualizar-nombre [post]
func (h *CustomerHTTPHandler) UpdateByName(c echo.Context) error {
	var upd updateByName
	if err := h.bind(c, &upd); err != nil {
		return h.reject(c, err)
	}

	patch, err := formPatch(upd.NewName, upd.Age, upd.City)
	if err != nil {
		return h.reject(c, err)
	}

	if err := h.customerSvc.UpdateByName(c.Request().Context(), upd.Name, patch); err != nil {
		return h.reject(c, err)
	}

	return c.JSON(http.StatusOK, &ack{OK: true, Msg: msgUpdated})
}

// DeleteByName deletes customers matching exact name
// @Summary     Delete customer by name
// @Tags        customers
// @Accept      x-www-form-urlencoded
// @Produce     json
// @Param       nombre formData string true "Name"
// @Success     200    {object} ack
// @Failure     400    {object} ack
// @Failure     502    {object} ack
// @Router      /clientes/eliminar-nombre [post]
func (h *CustomerHTTPHandler) DeleteByName(c echo.Context) error {
	var del deleteByName
	if err := h.bind(c, &del); err != nil {
		return h.reject(c, err)
	}

	if err := h.customerSvc.DeleteByName(c.Request().Context(), del.Name); err != nil {
		return h.reject(c, err)
	}

	return c.JSON(http.StatusOK, &ack{OK: true, Msg: msgDeleted})
}

// normalizer cleans up bound form before validation
type normalizer interface {
	normalize()
}

func (h *CustomerHTTPHandler) bind(c echo.Context, i any) error {
	if err := c.Bind(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgMalformedInput)
	}

	if n, ok := i.(normalizer); ok {
		n.normalize()
	}
	return c.Validate(i)
}

// reject answers with ack body for known errors, anything else goes to echo error handler
func (h *CustomerHTTPHandler) reject(c echo.Context, err error) error {
	var (
		pldErr  *validation.PayloadError
		vldErr  *apperrors.ValidationErr
		opErr   *apperrors.OperationalErr
		trErr   *apperrors.TransportErr
		httpErr *echo.HTTPError
	)

	switch {
	case errors.As(err, &pldErr):
		return c.JSON(http.StatusBadRequest, &ack{Msg: pldErr.First()})
	case errors.As(err, &vldErr):
		middleware.Logger(c).WithField("target", vldErr.Target()).Debug("input rejected")
		return c.JSON(http.StatusBadRequest, &ack{Msg: vldErr.Error()})
	case errors.As(err, &opErr):
		middleware.Logger(c).WithError(err).Warn("remote API did not confirm operation")
		return c.JSON(http.StatusBadRequest, &ack{Msg: opErr.Error()})
	case errors.As(err, &trErr):
		middleware.Logger(c).WithError(err).Error("remote API is unreachable")
		return c.JSON(http.StatusBadGateway, &ack{Msg: msgRemoteDown})
	case errors.As(err, &httpErr):
		return c.JSON(httpErr.Code, &ack{Msg: fmt.Sprint(httpErr.Message)})
	default:
		return err
	}
}

// failure builds message for error fragment, details are shown in development only
func (h *CustomerHTTPHandler) failure(err error) errorView {
	view := errorView{Message: msgListFailed}

	var trErr *apperrors.TransportErr
	if errors.As(err, &trErr) {
		view.Message = msgRemoteDown
	}

	if h.development {
		view.Detail = err.Error()
	}
	return view
}

func formPatch(name, age, city string) (model.CustomerPatch, error) {
	var patch model.CustomerPatch

	if name = strings.TrimSpace(name); name != "" {
		patch.Name = &name
	}

	if city = strings.TrimSpace(city); city != "" {
		patch.City = &city
	}

	if age = strings.TrimSpace(age); age != "" {
		n, err := strconv.Atoi(age)
		if err != nil {
			return patch, apperrors.NewValidationErr("edad", "Age must be a whole number.")
		}
		patch.Age = &n
	}

	return patch, nil
}
