package log

// Common field names for structured logging.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldWorkoutID  = "workout_id"
	FieldExercise   = "exercise"
	FieldSets       = "sets"
	FieldReps       = "reps"
	FieldWeightKg   = "weight_kg"
	FieldGroupLabel = "group_label"
	FieldSheetsRef  = "sheets_ref"
)

// Components defines standard component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentWorkout = "workout"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentSheets  = "sheets"
	ComponentCache   = "cache"
)

// Operations defines standard operation names.
const (
	OpCreate   = "create"
	OpDelete   = "delete"
	OpList     = "list"
	OpGroup    = "group"
	OpSync     = "sync"
	OpValidate = "validate"
	OpRender   = "render"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
