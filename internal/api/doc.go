// Package api exposes the pessoa, categoria and lancamento services over
// HTTP. Handlers decode JSON into domain inputs, call the services, and map
// service errors to status codes and the shared error envelope. Role checks
// are attached per route by each handler's Routes method; authentication
// itself is applied by the router that mounts them.
package api
