package todo

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"keel/infras/otel"
	"keel/internal/domains/todo/model/dto"
	"keel/internal/domains/todo/service"
	"keel/shared/constant"
	"keel/shared/failure"
	"keel/shared/validator"
	"keel/transport/http/middleware"
	"keel/transport/http/response"
)

type Handler struct {
	service    service.Todo
	middleware middleware.Auth
	otel       otel.Otel
}

func New(service service.Todo, middleware middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/todos", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.Auth)

		routerGroup.Post("/", handler.CreateTodo)
		routerGroup.Get("/", handler.GetTodos)
		routerGroup.Get("/{todoId}", handler.GetTodoByID)
		routerGroup.Patch("/{todoId}", handler.UpdateTodo)
		routerGroup.Delete("/{todoId}", handler.DeleteTodo)
		routerGroup.Post("/{todoId}/attachment", handler.RequestAttachmentUpload)
	})
}

// CreateTodo creates a new todo item for the authenticated owner.
func (handler *Handler) CreateTodo(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTodo")
	defer scope.End()

	ownerID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	req := dto.CreateTodoRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	created, err := handler.service.Create(ctx, ownerID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create todo")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Todo created successfully")

	response.WithJSON(writer, http.StatusCreated, created)
}

// GetTodos returns one page of the owner's todo items. Pagination is
// cursor-based: pass the next_cursor of the previous page to continue.
func (handler *Handler) GetTodos(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTodos")
	defer scope.End()

	ownerID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	cursorToken := request.URL.Query().Get(constant.RequestParamCursor)

	limit := constant.DefaultValueLimit

	if limitParam := request.URL.Query().Get(constant.RequestParamLimit); limitParam != constant.Empty {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil {
			err = failure.InvalidParameter("limit must be an integer")

			scope.TraceError(err)
			response.WithError(writer, err)

			return
		}

		limit = parsed
	}

	page, err := handler.service.List(ctx, ownerID, cursorToken, limit)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list todos")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, page)
}

// GetTodoByID returns a single todo item owned by the authenticated owner.
func (handler *Handler) GetTodoByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTodoByID")
	defer scope.End()

	ownerID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	todoID := chi.URLParam(request, constant.RequestParamTodoID)

	todo, err := handler.service.Get(ctx, ownerID, todoID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get todo")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, todo)
}

// UpdateTodo overwrites the mutable fields of an existing todo item.
func (handler *Handler) UpdateTodo(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTodo")
	defer scope.End()

	ownerID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	todoID := chi.URLParam(request, constant.RequestParamTodoID)

	req := dto.UpdateTodoRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	updated, err := handler.service.Update(ctx, ownerID, todoID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update todo")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Todo updated successfully")

	response.WithJSON(writer, http.StatusOK, updated)
}

// DeleteTodo removes a todo item and, best-effort, its attachment blob.
func (handler *Handler) DeleteTodo(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTodo")
	defer scope.End()

	ownerID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	todoID := chi.URLParam(request, constant.RequestParamTodoID)

	if err := handler.service.Delete(ctx, ownerID, todoID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete todo")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Todo deleted successfully")

	response.WithMessage(writer, http.StatusOK, "Todo deleted successfully")
}

// RequestAttachmentUpload returns a short-lived upload URL for the item's
// attachment and persists the public URL on the item.
func (handler *Handler) RequestAttachmentUpload(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RequestAttachmentUpload")
	defer scope.End()

	ownerID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	todoID := chi.URLParam(request, constant.RequestParamTodoID)

	res, err := handler.service.RequestAttachmentUpload(ctx, ownerID, todoID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create attachment upload target")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}
