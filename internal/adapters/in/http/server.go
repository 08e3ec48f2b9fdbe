package http

import (
	"context"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/contact"
	"marketplace/internal/core/domain/model/freelancer"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/review"
	"marketplace/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type (
	// CreateOrderHandler places an order.
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	// TransitionOrderHandler changes an order's status.
	TransitionOrderHandler interface {
		Handle(ctx context.Context, cmd commands.TransitionOrderCommand) (*order.Order, error)
	}
	// DeliverOrderHandler records submitted work.
	DeliverOrderHandler interface {
		Handle(ctx context.Context, cmd commands.DeliverOrderCommand) (*order.Delivery, error)
	}
	// DeleteOrderHandler removes an order.
	DeleteOrderHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteOrderCommand) error
	}
	// CreateReviewHandler adds a review of a completed order.
	CreateReviewHandler interface {
		Handle(ctx context.Context, cmd commands.CreateReviewCommand) (*review.Review, error)
	}
	// RaiseContactRequestHandler opens a contact request.
	RaiseContactRequestHandler interface {
		Handle(ctx context.Context, cmd commands.RaiseContactRequestCommand) (kernel.UUID, error)
	}
	// ResolveContactRequestHandler accepts or rejects a contact request.
	ResolveContactRequestHandler interface {
		Handle(ctx context.Context, cmd commands.ResolveContactRequestCommand) (*contact.Request, error)
	}
	// SubmitFreelancerRequestHandler files a request to become a freelancer.
	SubmitFreelancerRequestHandler interface {
		Handle(ctx context.Context, cmd commands.SubmitFreelancerRequestCommand) (*freelancer.Request, error)
	}
	// ResolveFreelancerRequestHandler approves or rejects a freelancer request.
	ResolveFreelancerRequestHandler interface {
		Handle(ctx context.Context, cmd commands.ResolveFreelancerRequestCommand) (*freelancer.Request, error)
	}
	// MarkNotificationReadHandler marks a notification as read.
	MarkNotificationReadHandler interface {
		Handle(ctx context.Context, cmd commands.MarkNotificationReadCommand) (*notification.Notification, error)
	}
	// DeleteUserHandler removes a user and everything they own.
	DeleteUserHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteUserCommand) error
	}

	// GetOrderStatusHandler reads an order's status.
	GetOrderStatusHandler interface {
		Handle(ctx context.Context, query queries.GetOrderStatusQuery) (order.Status, error)
	}
	// ListNotificationsHandler lists a user's live notifications.
	ListNotificationsHandler interface {
		Handle(ctx context.Context, query queries.ListNotificationsQuery) ([]queries.NotificationView, error)
	}
	// ListHistoryHandler lists a user's archived notifications.
	ListHistoryHandler interface {
		Handle(ctx context.Context, query queries.ListHistoryQuery) ([]queries.HistoryView, error)
	}
)

// Handlers bundles the use cases the API exposes.
type Handlers struct {
	CreateOrder              CreateOrderHandler
	TransitionOrder          TransitionOrderHandler
	DeliverOrder             DeliverOrderHandler
	DeleteOrder              DeleteOrderHandler
	CreateReview             CreateReviewHandler
	RaiseContactRequest      RaiseContactRequestHandler
	ResolveContactRequest    ResolveContactRequestHandler
	SubmitFreelancerRequest  SubmitFreelancerRequestHandler
	ResolveFreelancerRequest ResolveFreelancerRequestHandler
	MarkNotificationRead     MarkNotificationReadHandler
	DeleteUser               DeleteUserHandler

	GetOrderStatus    GetOrderStatusHandler
	ListNotifications ListNotificationsHandler
	ListHistory       ListHistoryHandler
}

var _ servers.ServerInterface = (*Server)(nil)

// Server implements servers.ServerInterface on top of the application
// command and query handlers. Every endpoint acts on behalf of the actor
// resolved by Authenticate.
type Server struct {
	h Handlers
}

// NewServer creates the API server. Every field of handlers must be set.
//
// Example:
//
//	server := http.NewServer(http.Handlers{
//		CreateOrder:     createOrder,
//		TransitionOrder: transitionOrder,
//		// ...
//	})
//	e, err := http.NewRouter(server, http.RouterConfig{JWTSecret: secret})
func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	var body servers.CreateOrderJSONRequestBody
	if err = bindAndValidate(ctx, &body); err != nil {
		return err
	}

	serviceID, err := toKernelUUID("serviceId", body.ServiceId)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(serviceID, actor)
	if err != nil {
		return err
	}

	o, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, toOrderResponse(o))
}

// TransitionOrder handles POST /api/v1/orders/{orderId}/transitions.
func (s *Server) TransitionOrder(ctx echo.Context, orderId servers.OrderId) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	var body servers.TransitionOrderJSONRequestBody
	if err = bindAndValidate(ctx, &body); err != nil {
		return err
	}

	orderID, err := toKernelUUID("orderId", orderId)
	if err != nil {
		return err
	}
	to, err := order.ParseStatus(string(body.Status))
	if err != nil {
		return err
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, to, actor)
	if err != nil {
		return err
	}

	o, err := s.h.TransitionOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(o))
}

// DeliverOrder handles POST /api/v1/orders/{orderId}/deliveries.
func (s *Server) DeliverOrder(ctx echo.Context, orderId servers.OrderId) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	var body servers.DeliverOrderJSONRequestBody
	if err = bindAndValidate(ctx, &body); err != nil {
		return err
	}

	orderID, err := toKernelUUID("orderId", orderId)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeliverOrderCommand(orderID, actor, deref(body.Message), deref(body.ArtifactUrl))
	if err != nil {
		return err
	}

	d, err := s.h.DeliverOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, toDeliveryResponse(d))
}

// GetOrderStatus handles GET /api/v1/orders/{orderId}/status. Any
// authenticated user may read it.
func (s *Server) GetOrderStatus(ctx echo.Context, orderId servers.OrderId) error {
	if _, err := actorFrom(ctx); err != nil {
		return err
	}

	orderID, err := toKernelUUID("orderId", orderId)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderStatusQuery(orderID)
	if err != nil {
		return err
	}

	status, err := s.h.GetOrderStatus.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, servers.OrderStatusResponse{Status: servers.OrderStatus(status.String())})
}

// DeleteOrder handles DELETE /api/v1/orders/{orderId}.
func (s *Server) DeleteOrder(ctx echo.Context, orderId servers.OrderId) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	orderID, err := toKernelUUID("orderId", orderId)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID, actor)
	if err != nil {
		return err
	}
	if err = s.h.DeleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateReview handles POST /api/v1/orders/{orderId}/reviews.
func (s *Server) CreateReview(ctx echo.Context, orderId servers.OrderId) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	var body servers.CreateReviewJSONRequestBody
	if err = bindAndValidate(ctx, &body); err != nil {
		return err
	}

	orderID, err := toKernelUUID("orderId", orderId)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateReviewCommand(orderID, actor, body.Rating, deref(body.Comment))
	if err != nil {
		return err
	}

	r, err := s.h.CreateReview.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, servers.CreatedResponse{Id: r.ID().Bytes()})
}

// RaiseContactRequest handles POST /api/v1/contact-requests.
func (s *Server) RaiseContactRequest(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	var body servers.RaiseContactRequestJSONRequestBody
	if err = bindAndValidate(ctx, &body); err != nil {
		return err
	}

	toUserID, err := toKernelUUID("toUserId", body.ToUserId)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRaiseContactRequestCommand(actor, toUserID, body.Message)
	if err != nil {
		return err
	}

	id, err := s.h.RaiseContactRequest.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, servers.CreatedResponse{Id: id.Bytes()})
}

// ResolveContactRequest handles POST /api/v1/contact-requests/{requestId}/resolution.
func (s *Server) ResolveContactRequest(ctx echo.Context, requestId servers.RequestId) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	var body servers.ResolveContactRequestJSONRequestBody
	if err = bindAndValidate(ctx, &body); err != nil {
		return err
	}

	requestID, err := toKernelUUID("requestId", requestId)
	if err != nil {
		return err
	}

	cmd, err := commands.NewResolveContactRequestCommand(requestID, actor, body.Accepted)
	if err != nil {
		return err
	}
	if _, err = s.h.ResolveContactRequest.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SubmitFreelancerRequest handles POST /api/v1/freelancer-requests.
func (s *Server) SubmitFreelancerRequest(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	var body servers.SubmitFreelancerRequestJSONRequestBody
	if err = bindAndValidate(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewSubmitFreelancerRequestCommand(actor, body.Motivation)
	if err != nil {
		return err
	}

	req, err := s.h.SubmitFreelancerRequest.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, servers.CreatedResponse{Id: req.ID().Bytes()})
}

// ResolveFreelancerRequest handles POST /api/v1/freelancer-requests/{requestId}/resolution.
func (s *Server) ResolveFreelancerRequest(ctx echo.Context, requestId servers.RequestId) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	var body servers.ResolveFreelancerRequestJSONRequestBody
	if err = bindAndValidate(ctx, &body); err != nil {
		return err
	}

	requestID, err := toKernelUUID("requestId", requestId)
	if err != nil {
		return err
	}

	cmd, err := commands.NewResolveFreelancerRequestCommand(requestID, actor, body.Approved)
	if err != nil {
		return err
	}
	if _, err = s.h.ResolveFreelancerRequest.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ListNotifications handles GET /api/v1/notifications.
func (s *Server) ListNotifications(ctx echo.Context, params servers.ListNotificationsParams) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewListNotificationsQuery(actor.ID(), deref(params.OnlyUnread))
	if err != nil {
		return err
	}

	views, err := s.h.ListNotifications.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]servers.Notification, len(views))
	for i, v := range views {
		response[i] = toNotificationResponse(v)
	}
	return ctx.JSON(http.StatusOK, response)
}

// ListNotificationHistory handles GET /api/v1/notifications/history.
func (s *Server) ListNotificationHistory(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewListHistoryQuery(actor.ID())
	if err != nil {
		return err
	}

	views, err := s.h.ListHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]servers.HistoryEntry, len(views))
	for i, v := range views {
		response[i] = toHistoryResponse(v)
	}
	return ctx.JSON(http.StatusOK, response)
}

// MarkNotificationRead handles POST /api/v1/notifications/{notificationId}/read.
func (s *Server) MarkNotificationRead(ctx echo.Context, notificationId openapi_types.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	notificationID, err := toKernelUUID("notificationId", notificationId)
	if err != nil {
		return err
	}

	cmd, err := commands.NewMarkNotificationReadCommand(notificationID, actor)
	if err != nil {
		return err
	}
	if _, err = s.h.MarkNotificationRead.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteUser handles DELETE /api/v1/users/{userId}.
func (s *Server) DeleteUser(ctx echo.Context, userId openapi_types.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	userID, err := toKernelUUID("userId", userId)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteUserCommand(userID, actor)
	if err != nil {
		return err
	}
	if err = s.h.DeleteUser.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}
