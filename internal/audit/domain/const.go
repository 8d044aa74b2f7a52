// Package domain defines the audit trail models: a closed taxonomy of event
// codes, target descriptors, and append-only audit events with an actor
// snapshot captured at write time.
package domain

// EventCode identifies the kind of action recorded by an audit event.
// The set is closed: unknown codes are rejected at registration time.
type EventCode string

// Audit event codes.
const (
	EventPrincipalCreated EventCode = "USUARIO_CREACION"
	EventPrincipalUpdated EventCode = "USUARIO_ACTUALIZACION"
	EventPrincipalDeleted EventCode = "USUARIO_ELIMINACION"
	EventRoleCreated      EventCode = "ROL_CREACION"
	EventRoleUpdated      EventCode = "ROL_ACTUALIZACION"
	EventTicketCreated    EventCode = "TICKET_CREACION"
	EventTicketDeleted    EventCode = "TICKET_ELIMINACION"
	EventRequestCreated   EventCode = "SOLICITUD_CREACION"
	EventRequestDeleted   EventCode = "SOLICITUD_ELIMINACION"
	EventSessionStarted   EventCode = "SESION_INICIO"
	EventSessionClosed    EventCode = "SESION_CIERRE"
	EventTenantSuspended  EventCode = "EMPRESA_SUSPENSION"
	EventTenantReinstated EventCode = "EMPRESA_REACTIVACION"
)

// Valid reports whether the event code belongs to the known taxonomy.
func (c EventCode) Valid() bool {
	switch c {
	case EventPrincipalCreated, EventPrincipalUpdated, EventPrincipalDeleted,
		EventRoleCreated, EventRoleUpdated,
		EventTicketCreated, EventTicketDeleted,
		EventRequestCreated, EventRequestDeleted,
		EventSessionStarted, EventSessionClosed,
		EventTenantSuspended, EventTenantReinstated:
		return true
	}
	return false
}

// Description returns the static human-readable description for the event
// code, used when the caller supplies no custom description.
func (c EventCode) Description() string {
	switch c {
	case EventPrincipalCreated:
		return "usuario creado"
	case EventPrincipalUpdated:
		return "usuario actualizado"
	case EventPrincipalDeleted:
		return "usuario eliminado"
	case EventRoleCreated:
		return "rol creado"
	case EventRoleUpdated:
		return "rol actualizado"
	case EventTicketCreated:
		return "ticket creado"
	case EventTicketDeleted:
		return "ticket eliminado"
	case EventRequestCreated:
		return "solicitud creada"
	case EventRequestDeleted:
		return "solicitud eliminada"
	case EventSessionStarted:
		return "sesión iniciada"
	case EventSessionClosed:
		return "sesión cerrada"
	case EventTenantSuspended:
		return "empresa suspendida"
	case EventTenantReinstated:
		return "empresa reactivada"
	}
	return string(c)
}

// TargetType classifies what an audit event acted on.
type TargetType string

// Audit target types.
const (
	TargetPrincipal TargetType = "Usuario"
	TargetRole      TargetType = "Rol"
	TargetTicket    TargetType = "Ticket"
	TargetRequest   TargetType = "Solicitud"
	TargetSession   TargetType = "Sesion"
	TargetTenant    TargetType = "Empresa"
)

// Valid reports whether the target type belongs to the known taxonomy.
func (t TargetType) Valid() bool {
	switch t {
	case TargetPrincipal, TargetRole, TargetTicket, TargetRequest, TargetSession, TargetTenant:
		return true
	}
	return false
}
