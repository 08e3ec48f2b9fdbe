package http

import (
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/generated/servers"
	"marketplace/internal/pkg/errs"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func toKernelUUID(param string, id openapi_types.UUID) (kernel.UUID, error) {
	parsed, err := kernel.UUIDFromString(id.String())
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return parsed, nil
}

func toOrderResponse(o *order.Order) servers.Order {
	return servers.Order{
		Id:           o.ID().Bytes(),
		ServiceId:    o.ServiceID().Bytes(),
		ClientId:     o.ClientID().Bytes(),
		FreelancerId: o.FreelancerID().Bytes(),
		TotalPrice: servers.Money{
			Amount:   o.TotalPrice().Amount(),
			Currency: o.TotalPrice().Currency(),
		},
		Status:    servers.OrderStatus(o.Status().String()),
		OrderedAt: o.OrderedAt(),
		UpdatedAt: o.UpdatedAt(),
	}
}

func toDeliveryResponse(d *order.Delivery) servers.Delivery {
	return servers.Delivery{
		Id:          d.ID().Bytes(),
		OrderId:     d.OrderID().Bytes(),
		Message:     optional(d.Message()),
		ArtifactUrl: optional(d.ArtifactURL()),
		CreatedAt:   d.CreatedAt(),
	}
}

func toNotificationResponse(v queries.NotificationView) servers.Notification {
	n := servers.Notification{
		Id:          v.ID.Bytes(),
		Type:        string(v.Type),
		Status:      string(v.Status),
		Content:     v.Content,
		IsRead:      v.IsRead,
		EmailSent:   v.EmailSent,
		EmailSentAt: v.EmailSentAt,
		CreatedAt:   v.CreatedAt,
	}
	if len(v.Payload) > 0 {
		payload := v.Payload
		n.Payload = &payload
	}
	return n
}

func toHistoryResponse(v queries.HistoryView) servers.HistoryEntry {
	return servers.HistoryEntry{
		NotificationId: v.NotificationID.Bytes(),
		Type:           string(v.Type),
		Status:         string(v.Status),
		Content:        v.Content,
		Delivered:      v.Delivered,
		Attempts:       v.Attempts,
		SentAt:         v.SentAt,
		CreatedAt:      v.CreatedAt,
		ArchivedAt:     v.ArchivedAt,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
