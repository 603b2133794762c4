package handler

import (
	"context"
	"net/http"

	"github.com/unisync/api/internal/model"
	"github.com/unisync/api/internal/service"
)

// AccountsService defines the account-management operations the admin
// handler needs
type AccountsService interface {
	CreateStudent(ctx context.Context, req service.CreateStudentRequest) (*model.StudentAccount, error)
	CreateSociety(ctx context.Context, req service.CreateSocietyRequest) (*model.SocietyAccount, error)
	ListStudents(ctx context.Context) ([]*model.StudentAccount, error)
	ListSocieties(ctx context.Context) ([]*model.SocietyAccount, error)
	GetStudent(ctx context.Context, id string) (*model.StudentAccount, error)
	GetSociety(ctx context.Context, id string) (*model.SocietyAccount, error)
	UpdateStudent(ctx context.Context, id string, req service.UpdateStudentRequest) (*model.StudentAccount, error)
	UpdateSociety(ctx context.Context, id string, req service.UpdateSocietyRequest) (*model.SocietyAccount, error)
	DeleteStudent(ctx context.Context, id string) error
	DeleteSociety(ctx context.Context, id string) error
}

// AdminHandler handles admin account-management endpoints
type AdminHandler struct {
	accountService AccountsService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(accountService AccountsService) *AdminHandler {
	return &AdminHandler{accountService: accountService}
}

// CreateStudentRequest represents the create-student request body
type CreateStudentRequest struct {
	Name       string `json:"name"`
	RollNo     string `json:"rollno"`
	Department string `json:"department,omitempty"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

// UpdateStudentRequest represents the update-student request body.
// Omitted fields are left unchanged.
type UpdateStudentRequest struct {
	Name       *string `json:"name,omitempty"`
	RollNo     *string `json:"rollno,omitempty"`
	Department *string `json:"department,omitempty"`
	Email      *string `json:"email,omitempty"`
	Password   *string `json:"password,omitempty"`
}

// CreateSocietyRequest represents the create-society request body
type CreateSocietyRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateSocietyRequest represents the update-society request body
type UpdateSocietyRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// ListStudents handles GET /api/admin/students
func (h *AdminHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.accountService.ListStudents(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, students)
}

// CreateStudent handles POST /api/admin/students
func (h *AdminHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req CreateStudentRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	account, err := h.accountService.CreateStudent(r.Context(), service.CreateStudentRequest{
		Name:       req.Name,
		RollNo:     req.RollNo,
		Department: req.Department,
		Email:      req.Email,
		Password:   req.Password,
	})
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusCreated, account)
}

// GetStudent handles GET /api/admin/students/{id}
func (h *AdminHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	account, err := h.accountService.GetStudent(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, account)
}

// UpdateStudent handles PUT /api/admin/students/{id}
func (h *AdminHandler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	var req UpdateStudentRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	account, err := h.accountService.UpdateStudent(r.Context(), r.PathValue("id"), service.UpdateStudentRequest{
		Name:       req.Name,
		RollNo:     req.RollNo,
		Department: req.Department,
		Email:      req.Email,
		Password:   req.Password,
	})
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, account)
}

// DeleteStudent handles DELETE /api/admin/students/{id}
func (h *AdminHandler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	if err := h.accountService.DeleteStudent(r.Context(), r.PathValue("id")); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteNoContent(w)
}

// ListSocieties handles GET /api/admin/societies
func (h *AdminHandler) ListSocieties(w http.ResponseWriter, r *http.Request) {
	societies, err := h.accountService.ListSocieties(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, societies)
}

// CreateSociety handles POST /api/admin/societies
func (h *AdminHandler) CreateSociety(w http.ResponseWriter, r *http.Request) {
	var req CreateSocietyRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	account, err := h.accountService.CreateSociety(r.Context(), service.CreateSocietyRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusCreated, account)
}

// GetSociety handles GET /api/admin/societies/{id}
func (h *AdminHandler) GetSociety(w http.ResponseWriter, r *http.Request) {
	account, err := h.accountService.GetSociety(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, account)
}

// UpdateSociety handles PUT /api/admin/societies/{id}
func (h *AdminHandler) UpdateSociety(w http.ResponseWriter, r *http.Request) {
	var req UpdateSocietyRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	account, err := h.accountService.UpdateSociety(r.Context(), r.PathValue("id"), service.UpdateSocietyRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, account)
}

// DeleteSociety handles DELETE /api/admin/societies/{id}
func (h *AdminHandler) DeleteSociety(w http.ResponseWriter, r *http.Request) {
	if err := h.accountService.DeleteSociety(r.Context(), r.PathValue("id")); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteNoContent(w)
}
