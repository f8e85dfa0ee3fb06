package registry

import (
	"context"
	"fmt"

	controlplane "github.com/ITlusions/ITL.ControlPlane.SDK-sub001"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform/errors"
)

// resolve validates req and looks up its provider.
func (r *Registry) resolve(req controlplane.ResourceRequest) (controlplane.ResourceProvider, error) {
	if err := req.OK(); err != nil {
		return nil, err
	}

	p, ok := r.Get(req.ProviderNamespace, req.ResourceType)
	if !ok {
		return nil, &errors.Error{
			Code: errors.ENotFound,
			Msg:  fmt.Sprintf("no provider registered for %s/%s", req.ProviderNamespace, req.ResourceType),
		}
	}
	return p, nil
}

func errCapability(p controlplane.ResourceProvider, capability string) error {
	return &errors.Error{
		Code: errors.ENotImplemented,
		Msg:  fmt.Sprintf("provider %s does not implement %s", p.ResourceProviderKind(), capability),
	}
}

// errNilResponse flags a provider that answered a read or write with neither
// a resource nor an error.
func errNilResponse(p controlplane.ResourceProvider) error {
	return &errors.Error{
		Code: errors.EInternal,
		Msg:  fmt.Sprintf("provider %s returned no resource", p.ResourceProviderKind()),
	}
}

// CreateOrUpdate dispatches a PUT request to the provider for the request's
// resource type. The response is guaranteed to carry a resource GUID.
func (r *Registry) CreateOrUpdate(ctx context.Context, req controlplane.ResourceRequest) (*controlplane.ResourceResponse, error) {
	p, err := r.resolve(req)
	if err != nil {
		return nil, err
	}

	creator, ok := p.(controlplane.ResourceCreator)
	if !ok {
		return nil, errCapability(p, "create_or_update")
	}

	resp, err := creator.CreateOrUpdateResource(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, errNilResponse(p)
	}

	resp.EnsureGUID()
	return resp, nil
}

// GetResource dispatches a point read to the provider.
func (r *Registry) GetResource(ctx context.Context, req controlplane.ResourceRequest) (*controlplane.ResourceResponse, error) {
	p, err := r.resolve(req)
	if err != nil {
		return nil, err
	}

	getter, ok := p.(controlplane.ResourceGetter)
	if !ok {
		return nil, errCapability(p, "get")
	}

	resp, err := getter.GetResource(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, errNilResponse(p)
	}

	resp.EnsureGUID()
	return resp, nil
}

// DeleteResource dispatches a delete to the provider.
func (r *Registry) DeleteResource(ctx context.Context, req controlplane.ResourceRequest) error {
	p, err := r.resolve(req)
	if err != nil {
		return err
	}

	deleter, ok := p.(controlplane.ResourceDeleter)
	if !ok {
		return errCapability(p, "delete")
	}

	return deleter.DeleteResource(ctx, req)
}

// ListResources dispatches a collection read to the provider. The request's
// ResourceName is ignored by convention; providers list within the request
// scope.
func (r *Registry) ListResources(ctx context.Context, req controlplane.ResourceRequest, opts ...controlplane.FindOptions) ([]*controlplane.ResourceResponse, string, error) {
	// list requests address a collection, so no resource name is present
	if req.ResourceName == "" {
		req.ResourceName = "-"
	}

	p, err := r.resolve(req)
	if err != nil {
		return nil, "", err
	}

	lister, ok := p.(controlplane.ResourceLister)
	if !ok {
		return nil, "", errCapability(p, "list")
	}

	resps, token, err := lister.ListResources(ctx, req, opts...)
	if err != nil {
		return nil, "", err
	}

	for _, resp := range resps {
		if resp != nil {
			resp.EnsureGUID()
		}
	}
	return resps, token, nil
}

// ExecuteAction dispatches a POST action to the provider.
func (r *Registry) ExecuteAction(ctx context.Context, req controlplane.ResourceRequest) (*controlplane.ResourceResponse, error) {
	if req.Action == "" {
		return nil, &errors.Error{
			Code: errors.EEmptyValue,
			Msg:  "action is required",
		}
	}

	p, err := r.resolve(req)
	if err != nil {
		return nil, err
	}

	exec, ok := p.(controlplane.ActionExecutor)
	if !ok {
		return nil, errCapability(p, "execute_action")
	}

	resp, err := exec.ExecuteAction(ctx, req)
	if err != nil {
		return nil, err
	}

	if resp != nil {
		resp.EnsureGUID()
	}
	return resp, nil
}
