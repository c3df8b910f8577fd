package employee_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dayflow/internal/employee"
	employeeerrors "dayflow/internal/employee/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	provisionFn       func(ctx context.Context, req employee.ProvisionEmployeeRequest) (employee.EmployeeResponse, error)
	meFn              func(ctx context.Context, userID string) (employee.EmployeeResponse, error)
	updateMyProfileFn func(ctx context.Context, userID string, req employee.UpdateProfileRequest) (employee.ProfileResponse, error)
	rosterFn          func(ctx context.Context, search, department string) ([]employee.RosterEntryResponse, error)
	getByIDFn         func(ctx context.Context, userID string) (employee.EmployeeResponse, error)
}

func (f *fakeService) Provision(ctx context.Context, req employee.ProvisionEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.provisionFn(ctx, req)
}
func (f *fakeService) Me(ctx context.Context, userID string) (employee.EmployeeResponse, error) {
	return f.meFn(ctx, userID)
}
func (f *fakeService) UpdateMyProfile(ctx context.Context, userID string, req employee.UpdateProfileRequest) (employee.ProfileResponse, error) {
	return f.updateMyProfileFn(ctx, userID, req)
}
func (f *fakeService) Roster(ctx context.Context, search, department string) ([]employee.RosterEntryResponse, error) {
	return f.rosterFn(ctx, search, department)
}
func (f *fakeService) GetByID(ctx context.Context, userID string) (employee.EmployeeResponse, error) {
	return f.getByIDFn(ctx, userID)
}

func TestHandler_Provision(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeService{
			provisionFn: func(ctx context.Context, req employee.ProvisionEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, userID, req.UserID)
				assert.Equal(t, "Engineering", req.Department)
				return employee.EmployeeResponse{UserID: req.UserID, EmployeeCode: "EMP-0001"}, nil
			},
		}
		h := employee.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/hr/employees",
			strings.NewReader(`{"user_id":"`+userID+`","department":"Engineering","designation":"Backend Engineer","date_of_join":"2026-03-01"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		h.Provision(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "EMP-0001")
	})

	t.Run("negative duplicate", func(t *testing.T) {
		svc := &fakeService{
			provisionFn: func(ctx context.Context, req employee.ProvisionEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrAlreadyProvisioned
			},
		}
		h := employee.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/hr/employees",
			strings.NewReader(`{"user_id":"`+userID+`","department":"Engineering","designation":"Backend Engineer","date_of_join":"2026-03-01"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		h.Provision(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("negative missing fields", func(t *testing.T) {
		h := employee.NewHandler(&fakeService{})

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/hr/employees", strings.NewReader(`{"user_id":"`+userID+`"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		h.Provision(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_MeAndUpdateMe(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New().String()

	t.Run("me success", func(t *testing.T) {
		svc := &fakeService{
			meFn: func(ctx context.Context, uid string) (employee.EmployeeResponse, error) {
				assert.Equal(t, userID, uid)
				return employee.EmployeeResponse{UserID: uid, Name: "Ayu Lestari", EmployeeCode: "EMP-0007"}, nil
			},
		}
		h := employee.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("user_id", userID)
		c.Request = httptest.NewRequest(http.MethodGet, "/employee/me", nil)
		h.Me(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "EMP-0007")
	})

	t.Run("me negative unauthenticated", func(t *testing.T) {
		h := employee.NewHandler(&fakeService{})

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/employee/me", nil)
		h.Me(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("update success", func(t *testing.T) {
		city := "Jakarta"
		svc := &fakeService{
			updateMyProfileFn: func(ctx context.Context, uid string, req employee.UpdateProfileRequest) (employee.ProfileResponse, error) {
				assert.Equal(t, userID, uid)
				assert.Equal(t, "Jakarta", *req.City)
				return employee.ProfileResponse{City: &city}, nil
			},
		}
		h := employee.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("user_id", userID)
		c.Request = httptest.NewRequest(http.MethodPatch, "/employee/me", strings.NewReader(`{"city":"Jakarta"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		h.UpdateMe(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Jakarta")
	})
}

func TestHandler_Roster(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success with filters", func(t *testing.T) {
		svc := &fakeService{
			rosterFn: func(ctx context.Context, search, department string) ([]employee.RosterEntryResponse, error) {
				assert.Equal(t, "ayu", search)
				assert.Equal(t, "Engineering", department)
				return []employee.RosterEntryResponse{
					{EmployeeID: uuid.New().String(), Name: "Ayu", WorkStatus: employee.WorkStatusOnLeave},
				}, nil
			},
		}
		h := employee.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/hr/employees?search=ayu&department=Engineering", nil)
		h.Roster(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), employee.WorkStatusOnLeave)
	})

	t.Run("empty result is still ok", func(t *testing.T) {
		svc := &fakeService{
			rosterFn: func(ctx context.Context, search, department string) ([]employee.RosterEntryResponse, error) {
				return []employee.RosterEntryResponse{}, nil
			},
		}
		h := employee.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/hr/employees", nil)
		h.Roster(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "No employees found")
	})
}
