package controlplane

import "context"

// ResourceProvider marks a type that manages one resource type within a
// provider namespace. A provider implements whichever of the capability
// interfaces below apply to its resource; the registry discovers missing
// capabilities at dispatch time and reports them as ENotImplemented, so
// nothing is checked at registration.
type ResourceProvider interface {
	// ResourceProviderKind names the provider implementation for logs and
	// the discovery endpoint, e.g. "tenant.ResourceGroupProvider".
	ResourceProviderKind() string
}

// ResourceCreator handles PUT requests for a resource type.
type ResourceCreator interface {
	CreateOrUpdateResource(ctx context.Context, req ResourceRequest) (*ResourceResponse, error)
}

// ResourceGetter handles point reads for a resource type.
type ResourceGetter interface {
	GetResource(ctx context.Context, req ResourceRequest) (*ResourceResponse, error)
}

// ResourceDeleter handles DELETE requests for a resource type.
type ResourceDeleter interface {
	DeleteResource(ctx context.Context, req ResourceRequest) error
}

// ResourceLister enumerates resources of a type within the request scope.
// A non-empty continuation token means more results are available and should
// be passed back via FindOptions offsets by the caller.
type ResourceLister interface {
	ListResources(ctx context.Context, req ResourceRequest, opts ...FindOptions) ([]*ResourceResponse, string, error)
}

// ActionExecutor handles POST actions (e.g. move, checkNameAvailability)
// addressed to a specific resource.
type ActionExecutor interface {
	ExecuteAction(ctx context.Context, req ResourceRequest) (*ResourceResponse, error)
}
