package brp

// BRP method names understood by a bevy_remote server. The brp_extras
// methods are optional capabilities; their absence surfaces as a
// method-not-found error and is handled gracefully by callers.
const (
	MethodQuery           = "bevy/query"
	MethodGet             = "bevy/get"
	MethodSpawn           = "bevy/spawn"
	MethodInsert          = "bevy/insert"
	MethodMutateComponent = "bevy/mutate_component"
	MethodRegistrySchema  = "bevy/registry/schema"
	MethodRPCDiscover     = "rpc.discover"

	MethodDiscoverFormat = "brp_extras/discover_format"
)

// DefaultURL is where bevy_remote listens unless configured otherwise.
const DefaultURL = "http://127.0.0.1:15702"
