package logging

import "context"

type requestIDKey struct{}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// FromContext returns Fields with the request id of ctx already set.
func FromContext(ctx context.Context) Fields {
	return Fields{Service: Service, RequestID: RequestID(ctx)}
}
