package shared

import "context"

type consoleSessionKey struct{}

type actorKey struct{}

// ContextWithConsoleSession stores the console-session identifier in context.
func ContextWithConsoleSession(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, consoleSessionKey{}, sid)
}

// ConsoleSessionFromContext extracts the console-session identifier from context.
func ConsoleSessionFromContext(ctx context.Context) string {
	sid, _ := ctx.Value(consoleSessionKey{}).(string)
	return sid
}

// ContextWithActor stores the acting principal identifier in context.
func ContextWithActor(ctx context.Context, principalID string) context.Context {
	return context.WithValue(ctx, actorKey{}, principalID)
}

// ActorFromContext extracts the acting principal identifier from context.
func ActorFromContext(ctx context.Context) string {
	id, _ := ctx.Value(actorKey{}).(string)
	return id
}
