// api/controller/user_controller_test.go
package controller_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/dev-mohitbeniwal/intervene/api/controller"
	intervene_errors "github.com/dev-mohitbeniwal/intervene/api/errors"
	"github.com/dev-mohitbeniwal/intervene/api/model"
	mock_service "github.com/dev-mohitbeniwal/intervene/api/test/service_mock"
)

func TestUserController(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserService := mock_service.NewMockIUserService(ctrl)
	router, api := setupRouter(adminActor)
	controller.NewUserController(mockUserService).RegisterRoutes(api)

	t.Run("CreateUser_Success", func(t *testing.T) {
		mockUserService.EXPECT().
			CreateUser(gomock.Any(), adminActor, gomock.Any()).
			DoAndReturn(func(_ any, _ *model.Actor, input model.UserInput) (*model.UserView, error) {
				assert.Equal(t, "Str0ng!Pass", input.Password)
				return &model.UserView{ID: "user-9", Email: input.Email, Role: model.RoleUser}, nil
			})

		w := serve(router, "POST", "/users", strings.NewReader(`{"first_name":"Luis","last_name":"Soto","email":"luis@school.cl","rut":"15678432-K","password":"Str0ng!Pass"}`))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NotContains(t, w.Body.String(), "Str0ng!Pass")
	})

	t.Run("GetUser_Failure_NotFound", func(t *testing.T) {
		mockUserService.EXPECT().
			GetUser(gomock.Any(), adminActor, "missing").
			Return(nil, intervene_errors.ErrUserNotFound)

		w := serve(router, "GET", "/users/missing", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("ListUsers_FilterBinding", func(t *testing.T) {
		mockUserService.EXPECT().
			ListUsers(gomock.Any(), adminActor, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, _ *model.Actor, f model.UserFilter, p model.Page) (*model.PageResult[model.UserView], error) {
				if assert.NotNil(t, f.Role) {
					assert.Equal(t, model.RoleAdmin, *f.Role)
				}
				if assert.NotNil(t, f.IsActive) {
					assert.True(t, *f.IsActive)
				}
				return model.NewPageResult[model.UserView](nil, 0, p), nil
			})

		w := serve(router, "GET", "/users?role=Admin&isActive=true", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []interface{}{}, decodeBody(t, w)["data"])
	})

	t.Run("ChangeStatus_Success", func(t *testing.T) {
		mockUserService.EXPECT().
			ChangeStatus(gomock.Any(), adminActor, "user-1", false).
			Return(&model.UserView{ID: "user-1"}, nil)

		w := serve(router, "PATCH", "/users/user-1/status", strings.NewReader(`{"is_active":false}`))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("ChangeStatus_Failure_MissingFlag", func(t *testing.T) {
		w := serve(router, "PATCH", "/users/user-1/status", strings.NewReader(`{}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("AssignRole_Failure_LastAdmin", func(t *testing.T) {
		mockUserService.EXPECT().
			AssignRole(gomock.Any(), adminActor, "admin-1", model.RoleUser).
			Return(nil, intervene_errors.ErrLastAdmin)

		w := serve(router, "PATCH", "/users/admin-1/role", strings.NewReader(`{"role":"User"}`))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "LAST_ADMIN", decodeBody(t, w)["error"])
	})

	t.Run("UpdateProfile_Success", func(t *testing.T) {
		mockUserService.EXPECT().
			UpdateProfile(gomock.Any(), adminActor, gomock.Any()).
			DoAndReturn(func(_ any, _ *model.Actor, input model.ProfileInput) (*model.UserView, error) {
				if assert.NotNil(t, input.Phone) {
					assert.Equal(t, "+56911112222", *input.Phone)
				}
				return &model.UserView{ID: "admin-1", Phone: *input.Phone}, nil
			})

		w := serve(router, "PUT", "/users/me/profile", strings.NewReader(`{"phone":"+56911112222"}`))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("DeleteUser_Success", func(t *testing.T) {
		mockUserService.EXPECT().
			DeleteUser(gomock.Any(), adminActor, "user-1").
			Return(nil)

		w := serve(router, "DELETE", "/users/user-1", nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
