package mock

import (
	"context"

	controlplane "github.com/ITlusions/ITL.ControlPlane.SDK-sub001"
)

var (
	_ controlplane.ResourceProvider = (*ResourceProvider)(nil)
	_ controlplane.ResourceCreator  = (*ResourceProvider)(nil)
	_ controlplane.ResourceGetter   = (*ResourceProvider)(nil)
	_ controlplane.ResourceDeleter  = (*ResourceProvider)(nil)
	_ controlplane.ResourceLister   = (*ResourceProvider)(nil)
	_ controlplane.ActionExecutor   = (*ResourceProvider)(nil)
)

// ResourceProvider is a mock implementation of every provider capability.
// Use KindOnlyProvider for a provider that implements none of them.
type ResourceProvider struct {
	KindFn                   func() string
	CreateOrUpdateResourceFn func(ctx context.Context, req controlplane.ResourceRequest) (*controlplane.ResourceResponse, error)
	GetResourceFn            func(ctx context.Context, req controlplane.ResourceRequest) (*controlplane.ResourceResponse, error)
	DeleteResourceFn         func(ctx context.Context, req controlplane.ResourceRequest) error
	ListResourcesFn          func(ctx context.Context, req controlplane.ResourceRequest, opts ...controlplane.FindOptions) ([]*controlplane.ResourceResponse, string, error)
	ExecuteActionFn          func(ctx context.Context, req controlplane.ResourceRequest) (*controlplane.ResourceResponse, error)
}

// NewResourceProvider returns a mock provider whose methods echo a minimal
// response for the requested resource.
func NewResourceProvider(kind string) *ResourceProvider {
	respond := func(ctx context.Context, req controlplane.ResourceRequest) (*controlplane.ResourceResponse, error) {
		return &controlplane.ResourceResponse{
			ID:                req.Path(),
			Name:              req.ResourceName,
			Type:              req.ProviderNamespace + "/" + req.ResourceType,
			Location:          req.Location,
			ProvisioningState: controlplane.ProvisioningSucceeded,
		}, nil
	}

	return &ResourceProvider{
		KindFn:                   func() string { return kind },
		CreateOrUpdateResourceFn: respond,
		GetResourceFn:            respond,
		DeleteResourceFn: func(ctx context.Context, req controlplane.ResourceRequest) error {
			return nil
		},
		ListResourcesFn: func(ctx context.Context, req controlplane.ResourceRequest, opts ...controlplane.FindOptions) ([]*controlplane.ResourceResponse, string, error) {
			resp, _ := respond(ctx, req)
			return []*controlplane.ResourceResponse{resp}, "", nil
		},
		ExecuteActionFn: respond,
	}
}

func (p *ResourceProvider) ResourceProviderKind() string {
	return p.KindFn()
}

func (p *ResourceProvider) CreateOrUpdateResource(ctx context.Context, req controlplane.ResourceRequest) (*controlplane.ResourceResponse, error) {
	return p.CreateOrUpdateResourceFn(ctx, req)
}

func (p *ResourceProvider) GetResource(ctx context.Context, req controlplane.ResourceRequest) (*controlplane.ResourceResponse, error) {
	return p.GetResourceFn(ctx, req)
}

func (p *ResourceProvider) DeleteResource(ctx context.Context, req controlplane.ResourceRequest) error {
	return p.DeleteResourceFn(ctx, req)
}

func (p *ResourceProvider) ListResources(ctx context.Context, req controlplane.ResourceRequest, opts ...controlplane.FindOptions) ([]*controlplane.ResourceResponse, string, error) {
	return p.ListResourcesFn(ctx, req, opts...)
}

func (p *ResourceProvider) ExecuteAction(ctx context.Context, req controlplane.ResourceRequest) (*controlplane.ResourceResponse, error) {
	return p.ExecuteActionFn(ctx, req)
}

// KindOnlyProvider implements ResourceProvider and nothing else, useful for
// exercising capability dispatch failures.
type KindOnlyProvider struct {
	Kind string
}

func (p *KindOnlyProvider) ResourceProviderKind() string {
	return p.Kind
}
