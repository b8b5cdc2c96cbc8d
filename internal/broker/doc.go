// Package broker wraps the RabbitMQ management HTTP API.
//
// Client lists, deletes, and purges queues through rabbit-hole and maps HTTP
// failures onto ErrNotFound, ErrUnauthorized, and ErrRequest. DeleteAction and
// PurgeAction adapt the client to the selection engine.
package broker
