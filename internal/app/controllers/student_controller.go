package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dmwangi/schooltransit/internal/app/models/dto"
	"github.com/dmwangi/schooltransit/internal/app/services"
	"github.com/dmwangi/schooltransit/internal/middleware"
)

// StudentController handles student lifecycle operations
type StudentController struct {
	studentService services.IStudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.IStudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		logger:         logger,
	}
}

// GetDashboard returns the student dashboard aggregate
// @Summary Student dashboard
// @Description Returns the full roster, its active/withdrawn partitions, recent parent contact changes and headcounts.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentDashboardData} "Student data retrieved successfully."
// @Failure 403 {object} dto.APIResponse "Not a School Admin"
// @Router /api/students [get]
func (c *StudentController) GetDashboard(ctx *gin.Context) {
	data, err := c.studentService.DashboardData(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Failed to retrieve student dashboard data.")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Student data retrieved successfully.", data))
}

// AdmitStudent creates a new student admission
// @Summary Admit a student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAdmissionRequest true "Admission details"
// @Success 201 {object} dto.APIResponse{data=dto.StudentData} "Student admission created successfully."
// @Failure 409 {object} dto.APIResponse "Admission number already exists"
// @Router /api/students/admissions [post]
func (c *StudentController) AdmitStudent(ctx *gin.Context) {
	var req dto.CreateAdmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(dto.HandleValidationError(err)))
		return
	}

	student, err := c.studentService.CreateAdmission(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Failed to create student admission.")
		return
	}

	c.logger.Info().Int64("studentId", student.ID).Str("admissionNumber", student.AdmissionNumber).Msg("Student admitted")
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("Student admission created successfully.",
		dto.StudentData{Student: student}))
}

// ChangeParentContact replaces a student's parent contact
// @Summary Update parent contact
// @Description Replaces the parent contact and records the change in the audit trail. The new value must differ from the current one.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Param request body dto.UpdateParentContactRequest true "New parent contact"
// @Success 200 {object} dto.APIResponse{data=dto.StudentData} "Parent contact updated successfully."
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Router /api/students/{studentId}/parent-contact [patch]
func (c *StudentController) ChangeParentContact(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("studentId must be a positive integer."))
		return
	}

	var req dto.UpdateParentContactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(dto.HandleValidationError(err)))
		return
	}

	changedByUserID := ctx.GetInt64(middleware.ContextUserID)

	student, err := c.studentService.UpdateParentContact(ctx.Request.Context(), studentID, &req, changedByUserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Failed to update parent contact.")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Parent contact updated successfully.",
		dto.StudentData{Student: student}))
}

// WithdrawStudent records a student withdrawal
// @Summary Withdraw a student
// @Description Marks an active student as withdrawn. Withdrawal is permanent.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Param request body dto.WithdrawStudentRequest false "Withdrawal details"
// @Success 200 {object} dto.APIResponse{data=dto.StudentData} "Student withdrawal recorded successfully."
// @Failure 409 {object} dto.APIResponse "Student is already withdrawn"
// @Router /api/students/{studentId}/withdrawal [patch]
func (c *StudentController) WithdrawStudent(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("studentId must be a positive integer."))
		return
	}

	var req dto.WithdrawStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && ctx.Request.ContentLength > 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(dto.HandleValidationError(err)))
		return
	}

	student, err := c.studentService.Withdraw(ctx.Request.Context(), studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Failed to record student withdrawal.")
		return
	}

	c.logger.Info().Int64("studentId", student.ID).Msg("Student withdrawn")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Student withdrawal recorded successfully.",
		dto.StudentData{Student: student}))
}

// UpdateMasterData corrects admission identity fields
// @Summary Update student master data
// @Description Applies a partial update of admission-identity fields. At least one non-blank field is required.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Param request body dto.UpdateMasterDataRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.StudentData} "Student master data updated successfully."
// @Failure 400 {object} dto.APIResponse "No master data fields were provided"
// @Router /api/students/{studentId}/master-data [patch]
func (c *StudentController) UpdateMasterData(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("studentId must be a positive integer."))
		return
	}

	var req dto.UpdateMasterDataRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(dto.HandleValidationError(err)))
		return
	}

	student, err := c.studentService.UpdateMasterData(ctx.Request.Context(), studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Failed to update student master data.")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Student master data updated successfully.",
		dto.StudentData{Student: student}))
}
