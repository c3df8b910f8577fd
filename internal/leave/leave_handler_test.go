package leave_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dayflow/internal/leave"
	leaveerrors "dayflow/internal/leave/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	submitFn      func(ctx context.Context, userID string, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error)
	listMineFn    func(ctx context.Context, userID string) ([]leave.LeaveResponse, error)
	listPendingFn func(ctx context.Context) ([]leave.PendingLeaveResponse, error)
	approveFn     func(ctx context.Context, id, approverID string) (leave.LeaveResponse, error)
	rejectFn      func(ctx context.Context, id string, req leave.RejectLeaveRequest) (leave.LeaveResponse, error)
}

func (f *fakeService) Submit(ctx context.Context, userID string, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
	return f.submitFn(ctx, userID, req)
}
func (f *fakeService) ListMine(ctx context.Context, userID string) ([]leave.LeaveResponse, error) {
	return f.listMineFn(ctx, userID)
}
func (f *fakeService) ListPending(ctx context.Context) ([]leave.PendingLeaveResponse, error) {
	return f.listPendingFn(ctx)
}
func (f *fakeService) Approve(ctx context.Context, id, approverID string) (leave.LeaveResponse, error) {
	return f.approveFn(ctx, id, approverID)
}
func (f *fakeService) Reject(ctx context.Context, id string, req leave.RejectLeaveRequest) (leave.LeaveResponse, error) {
	return f.rejectFn(ctx, id, req)
}

func TestHandler_Submit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeService{
			submitFn: func(ctx context.Context, uid string, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, userID, uid)
				assert.Equal(t, "2026-03-10", req.FromDate)
				return leave.LeaveResponse{ID: uuid.New().String(), Status: leave.StatusPending}, nil
			},
		}
		h := leave.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("user_id", userID)
		c.Request = httptest.NewRequest(http.MethodPost, "/employee/leaves",
			strings.NewReader(`{"from_date":"2026-03-10","to_date":"2026-03-12","reason":"trip"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		h.Submit(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"success":true`)
		assert.Contains(t, w.Body.String(), leave.StatusPending)

		cached, ok := c.Get("idempotency_response")
		assert.True(t, ok)
		assert.NotNil(t, cached)
	})

	t.Run("negative overlap conflict", func(t *testing.T) {
		svc := &fakeService{
			submitFn: func(ctx context.Context, uid string, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveOverlap
			},
		}
		h := leave.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("user_id", userID)
		c.Request = httptest.NewRequest(http.MethodPost, "/employee/leaves",
			strings.NewReader(`{"from_date":"2026-03-10","to_date":"2026-03-12"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		h.Submit(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
		assert.Contains(t, w.Body.String(), "CONFLICT")
	})

	t.Run("negative missing body fields", func(t *testing.T) {
		svc := &fakeService{
			submitFn: func(ctx context.Context, uid string, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
				t.Fatal("service must not be called on invalid input")
				return leave.LeaveResponse{}, nil
			},
		}
		h := leave.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("user_id", userID)
		c.Request = httptest.NewRequest(http.MethodPost, "/employee/leaves", strings.NewReader(`{"from_date":"2026-03-10"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		h.Submit(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative unauthenticated", func(t *testing.T) {
		h := leave.NewHandler(&fakeService{})

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/employee/leaves", strings.NewReader(`{}`))
		h.Submit(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestHandler_ListMine(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New().String()

	svc := &fakeService{
		listMineFn: func(ctx context.Context, uid string) ([]leave.LeaveResponse, error) {
			assert.Equal(t, userID, uid)
			return []leave.LeaveResponse{
				{ID: uuid.New().String(), Status: leave.StatusApproved},
				{ID: uuid.New().String(), Status: leave.StatusPending},
			}, nil
		},
	}
	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", userID)
	c.Request = httptest.NewRequest(http.MethodGet, "/employee/leaves", nil)
	h.ListMine(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), leave.StatusApproved)
}

func TestHandler_ApproveAndReject(t *testing.T) {
	gin.SetMode(gin.TestMode)
	leaveID := uuid.New().String()
	approverID := uuid.New().String()

	t.Run("approve success", func(t *testing.T) {
		svc := &fakeService{
			approveFn: func(ctx context.Context, id, aid string) (leave.LeaveResponse, error) {
				assert.Equal(t, leaveID, id)
				assert.Equal(t, approverID, aid)
				return leave.LeaveResponse{ID: id, Status: leave.StatusApproved}, nil
			},
		}
		h := leave.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("user_id", approverID)
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Request = httptest.NewRequest(http.MethodPatch, "/hr/leaves/"+leaveID+"/approve", nil)
		h.Approve(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), leave.StatusApproved)
	})

	t.Run("approve negative not found", func(t *testing.T) {
		svc := &fakeService{
			approveFn: func(ctx context.Context, id, aid string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveNotFound
			},
		}
		h := leave.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("user_id", approverID)
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
		c.Request = httptest.NewRequest(http.MethodPatch, "/hr/leaves/"+leaveID+"/approve", nil)
		h.Approve(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("reject success without body", func(t *testing.T) {
		svc := &fakeService{
			rejectFn: func(ctx context.Context, id string, req leave.RejectLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, leaveID, id)
				assert.Empty(t, req.Reason)
				return leave.LeaveResponse{ID: id, Status: leave.StatusRejected}, nil
			},
		}
		h := leave.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("user_id", approverID)
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Request = httptest.NewRequest(http.MethodPatch, "/hr/leaves/"+leaveID+"/reject", nil)
		h.Reject(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), leave.StatusRejected)
	})

	t.Run("reject success with reason", func(t *testing.T) {
		svc := &fakeService{
			rejectFn: func(ctx context.Context, id string, req leave.RejectLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, "missing cover", req.Reason)
				return leave.LeaveResponse{ID: id, Status: leave.StatusRejected}, nil
			},
		}
		h := leave.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("user_id", approverID)
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Request = httptest.NewRequest(http.MethodPatch, "/hr/leaves/"+leaveID+"/reject",
			strings.NewReader(`{"reason":"missing cover"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		h.Reject(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
