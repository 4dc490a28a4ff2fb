package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"github.com/gregsyu/task-manager/internal/adapter/http/dto"
	"github.com/gregsyu/task-manager/internal/adapter/http/mapper"
	"github.com/gregsyu/task-manager/internal/adapter/http/middleware"
	"github.com/gregsyu/task-manager/internal/adapter/http/validation"
	"github.com/gregsyu/task-manager/internal/core/domain"
	"github.com/gregsyu/task-manager/internal/core/ports"
	"github.com/gregsyu/task-manager/pkg/apierrors"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondUnauthorized(c, lang)
		return
	}

	req, raw, ok := bindTaskBody[dto.CreateTaskRequest](c, lang)
	if !ok {
		return
	}

	input, err := validation.BuildCreateTaskInput(req, raw)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidPayload, lang),
		)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), user.ID, input)
	if err != nil {
		var fieldErr *domain.InvalidFieldError
		if errors.As(err, &fieldErr) {
			c.JSON(
				http.StatusUnprocessableEntity,
				apierrors.CreateFieldError(http.StatusUnprocessableEntity, apierrors.MsgInvalidTaskField, lang, fieldErr.Field),
			)
			return
		}

		zap.L().Error("failed to create task", zap.Uint64("owner_id", user.ID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailCreateTask, lang),
		)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	lang := middleware.GetLang(c)

	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondUnauthorized(c, lang)
		return
	}

	var query dto.ListTasksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidListQuery, lang),
		)
		return
	}

	filter := ports.TaskFilter{Skip: query.Skip, Limit: query.Limit}
	if query.Status != nil {
		status := domain.TaskStatus(*query.Status)
		if !status.Valid() {
			c.JSON(
				http.StatusBadRequest,
				apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidListQuery, lang),
			)
			return
		}
		filter.Status = &status
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), user.ID, filter)
	if err != nil {
		zap.L().Error("failed to list tasks", zap.Uint64("owner_id", user.ID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailListTask, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondUnauthorized(c, lang)
		return
	}

	taskID, ok := parseTaskID(c, lang)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), user.ID, taskID)
	if err != nil {
		respondTaskError(c, lang, taskID, err, apierrors.MsgFailGetTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondUnauthorized(c, lang)
		return
	}

	taskID, ok := parseTaskID(c, lang)
	if !ok {
		return
	}

	req, raw, ok := bindTaskBody[dto.UpdateTaskRequest](c, lang)
	if !ok {
		return
	}

	input, err := validation.BuildUpdateTaskInput(req, raw)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidPayload, lang),
		)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), user.ID, taskID, input)
	if err != nil {
		var fieldErr *domain.InvalidFieldError
		if errors.As(err, &fieldErr) {
			c.JSON(
				http.StatusUnprocessableEntity,
				apierrors.CreateFieldError(http.StatusUnprocessableEntity, apierrors.MsgInvalidTaskField, lang, fieldErr.Field),
			)
			return
		}

		respondTaskError(c, lang, taskID, err, apierrors.MsgFailUpdateTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondUnauthorized(c, lang)
		return
	}

	taskID, ok := parseTaskID(c, lang)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), user.ID, taskID); err != nil {
		respondTaskError(c, lang, taskID, err, apierrors.MsgFailDeleteTask)
		return
	}

	c.Status(http.StatusNoContent)
}

// bindTaskBody binds the JSON body twice: once into the typed request and
// once into a raw field map, so partial updates can tell "absent" from
// "null" and mistyped fields are caught.
func bindTaskBody[T any](c *gin.Context, lang string) (T, map[string]json.RawMessage, bool) {
	var req T

	body, err := c.GetRawData()
	if err != nil {
		respondInvalidPayload(c, lang)
		return req, nil, false
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		respondInvalidPayload(c, lang)
		return req, nil, false
	}

	if err := binding.JSON.BindBody(body, &req); err != nil {
		respondInvalidPayload(c, lang)
		return req, nil, false
	}

	return req, raw, true
}

func parseTaskID(c *gin.Context, lang string) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || taskID == 0 {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang),
		)
		return 0, false
	}
	return taskID, true
}

func respondTaskError(c *gin.Context, lang string, taskID uint64, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
		)
	case errors.Is(err, domain.ErrTaskForbidden):
		c.JSON(
			http.StatusForbidden,
			apierrors.CreateError(http.StatusForbidden, apierrors.MsgTaskForbidden, lang),
		)
	default:
		zap.L().Error("task operation failed", zap.Uint64("task_id", taskID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, fallbackMsg, lang),
		)
	}
}

func respondInvalidPayload(c *gin.Context, lang string) {
	c.JSON(
		http.StatusBadRequest,
		apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidPayload, lang),
	)
}

func respondUnauthorized(c *gin.Context, lang string) {
	c.JSON(
		http.StatusUnauthorized,
		apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, lang),
	)
}
