package tenant

import (
	"context"
	"fmt"
	"strconv"

	controlplane "github.com/ITlusions/ITL.ControlPlane.SDK-sub001"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform/errors"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/registry"
	"github.com/google/uuid"
)

// Resource types the tenancy providers register under.
const (
	TenantsResourceType          = "tenants"
	ManagementGroupsResourceType = "managementgroups"
	SubscriptionsResourceType    = "subscriptions"
	ResourceGroupsResourceType   = "resourcegroups"
)

// RegisterProviders registers the tenancy providers for svc on reg under
// the given namespace.
func RegisterProviders(reg *registry.Registry, namespace string, svc *Service) error {
	if namespace == "" {
		namespace = controlplane.DefaultProviderNamespace
	}

	for resourceType, provider := range map[string]controlplane.ResourceProvider{
		TenantsResourceType:          &TenantProvider{svc: svc},
		ManagementGroupsResourceType: &ManagementGroupProvider{svc: svc},
		SubscriptionsResourceType:    &SubscriptionProvider{svc: svc},
		ResourceGroupsResourceType:   &ResourceGroupProvider{svc: svc, subs: svc},
	} {
		if err := reg.Register(namespace, resourceType, provider); err != nil {
			return err
		}
	}
	return nil
}

// resourceGUID derives a stable GUID from an entity ID, so repeated reads of
// the same resource report the same GUID.
func resourceGUID(id platform.ID) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(id.String()))
}

func decodeSubscriptionID(req controlplane.ResourceRequest) (platform.ID, error) {
	if req.SubscriptionID == "" {
		return platform.InvalidID(), &errors.Error{
			Code: errors.EInvalid,
			Msg:  "request is missing a subscription scope",
		}
	}

	id, err := platform.IDFromString(req.SubscriptionID)
	if err != nil {
		return platform.InvalidID(), &errors.Error{
			Code: errors.EInvalid,
			Msg:  fmt.Sprintf("invalid subscription id %q", req.SubscriptionID),
			Err:  err,
		}
	}
	return *id, nil
}

func bodyString(body map[string]interface{}, key string) string {
	if body == nil {
		return ""
	}
	s, _ := body[key].(string)
	return s
}

func bodyTags(body map[string]interface{}) map[string]string {
	raw, ok := body["tags"].(map[string]interface{})
	if !ok {
		return nil
	}

	tags := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			tags[k] = s
		}
	}
	return tags
}

// listToken returns the continuation token for a page, empty when the page
// was not full.
func listToken(opts []controlplane.FindOptions, n int) string {
	var o controlplane.FindOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Limit == 0 || n < o.Limit {
		return ""
	}
	return strconv.Itoa(o.Offset + n)
}

// TenantProvider serves the tenants resource type. Tenants are addressed by
// name and carry no subscription scope.
type TenantProvider struct {
	svc controlplane.TenantService
}

var (
	_ controlplane.ResourceCreator = (*TenantProvider)(nil)
	_ controlplane.ResourceGetter  = (*TenantProvider)(nil)
	_ controlplane.ResourceDeleter = (*TenantProvider)(nil)
	_ controlplane.ResourceLister  = (*TenantProvider)(nil)
)

func (p *TenantProvider) ResourceProviderKind() string { return "tenant.TenantProvider" }

func (p *TenantProvider) response(req controlplane.ResourceRequest, t *controlplane.Tenant) *controlplane.ResourceResponse {
	req.ResourceName = t.Name
	return &controlplane.ResourceResponse{
		ID:   req.Path(),
		Name: t.Name,
		Type: req.ProviderNamespace + "/" + TenantsResourceType,
		Properties: map[string]interface{}{
			"displayName":   t.DisplayName,
			"defaultDomain": t.DefaultDomain,
		},
		ProvisioningState: controlplane.ProvisioningSucceeded,
		ResourceGUID:      resourceGUID(t.ID),
	}
}

func (p *TenantProvider) CreateOrUpdateResource(ctx context.Context, req controlplane.ResourceRequest) (*controlplane.ResourceResponse, error) {
	upd := controlplane.TenantUpdate{}
	if s := bodyString(req.Body, "displayName"); s != "" {
		upd.DisplayName = &s
	}
	if s := bodyString(req.Body, "defaultDomain"); s != "" {
		upd.DefaultDomain = &s
	}

	existing, err := p.svc.FindTenant(ctx, controlplane.TenantFilter{Name: &req.ResourceName})
	if err == nil {
		t, err := p.svc.UpdateTenant(ctx, existing.ID, upd)
		if err != nil {
			return nil, err
		}
		return p.response(req, t), nil
	}
	if errors.ErrorCode(err) != errors.ENotFound {
		return nil, err
	}

	t := &controlplane.Tenant{Name: req.ResourceName}
	if upd.DisplayName != nil {
		t.DisplayName = *upd.DisplayName
	}
	if upd.DefaultDomain != nil {
		t.DefaultDomain = *upd.DefaultDomain
	}
	if err := p.svc.CreateTenant(ctx, t); err != nil {
		return nil, err
	}
	return p.response(req, t), nil
}

func (p *TenantProvider) GetResource(ctx context.Context, req controlplane.ResourceRequest) (*controlplane.ResourceResponse, error) {
	t, err := p.svc.FindTenant(ctx, controlplane.TenantFilter{Name: &req.ResourceName})
	if err != nil {
		return nil, err
	}
	return p.response(req, t), nil
}

func (p *TenantProvider) DeleteResource(ctx context.Context, req controlplane.ResourceRequest) error {
	t, err := p.svc.FindTenant(ctx, controlplane.TenantFilter{Name: &req.ResourceName})
	if err != nil {
		return err
	}
	return p.svc.DeleteTenant(ctx, t.ID)
}

func (p *TenantProvider) ListResources(ctx context.Context, req controlplane.ResourceRequest, opts ...controlplane.FindOptions) ([]*controlplane.ResourceResponse, string, error) {
	ts, n, err := p.svc.FindTenants(ctx, controlplane.TenantFilter{}, opts...)
	if err != nil {
		return nil, "", err
	}

	resps := make([]*controlplane.ResourceResponse, 0, n)
	for _, t := range ts {
		resps = append(resps, p.response(req, t))
	}
	return resps, listToken(opts, n), nil
}

// ManagementGroupProvider serves the managementgroups resource type.
// It is read-only; groups are managed through the dedicated API surface.
type ManagementGroupProvider struct {
	svc controlplane.ManagementGroupService
}

var (
	_ controlplane.ResourceGetter = (*ManagementGroupProvider)(nil)
	_ controlplane.ResourceLister = (*ManagementGroupProvider)(nil)
)

func (p *ManagementGroupProvider) ResourceProviderKind() string {
	return "tenant.ManagementGroupProvider"
}

func (p *ManagementGroupProvider) response(req controlplane.ResourceRequest, mg *controlplane.ManagementGroup) *controlplane.ResourceResponse {
	req.ResourceName = mg.Name
	props := map[string]interface{}{
		"displayName": mg.DisplayName,
		"tenantId":    mg.TenantID.String(),
	}
	if mg.ParentID != nil {
		props["parentId"] = mg.ParentID.String()
	}
	return &controlplane.ResourceResponse{
		ID:                req.Path(),
		Name:              mg.Name,
		Type:              req.ProviderNamespace + "/" + ManagementGroupsResourceType,
		Properties:        props,
		ProvisioningState: controlplane.ProvisioningSucceeded,
		ResourceGUID:      resourceGUID(mg.ID),
	}
}

func (p *ManagementGroupProvider) GetResource(ctx context.Context, req controlplane.ResourceRequest) (*controlplane.ResourceResponse, error) {
	mgs, _, err := p.svc.FindManagementGroups(ctx, controlplane.ManagementGroupFilter{Name: &req.ResourceName})
	if err != nil {
		return nil, err
	}
	if len(mgs) == 0 {
		return nil, ErrManagementGroupNotFound
	}
	return p.response(req, mgs[0]), nil
}

func (p *ManagementGroupProvider) ListResources(ctx context.Context, req controlplane.ResourceRequest, opts ...controlplane.FindOptions) ([]*controlplane.ResourceResponse, string, error) {
	mgs, n, err := p.svc.FindManagementGroups(ctx, controlplane.ManagementGroupFilter{}, opts...)
	if err != nil {
		return nil, "", err
	}

	resps := make([]*controlplane.ResourceResponse, 0, n)
	for _, mg := range mgs {
		resps = append(resps, p.response(req, mg))
	}
	return resps, listToken(opts, n), nil
}

// SubscriptionProvider serves the subscriptions resource type, read-only.
type SubscriptionProvider struct {
	svc controlplane.SubscriptionService
}

var (
	_ controlplane.ResourceGetter = (*SubscriptionProvider)(nil)
	_ controlplane.ResourceLister = (*SubscriptionProvider)(nil)
)

func (p *SubscriptionProvider) ResourceProviderKind() string { return "tenant.SubscriptionProvider" }

func (p *SubscriptionProvider) response(req controlplane.ResourceRequest, sub *controlplane.Subscription) *controlplane.ResourceResponse {
	req.ResourceName = sub.Name
	props := map[string]interface{}{
		"displayName": sub.DisplayName,
		"tenantId":    sub.TenantID.String(),
		"state":       string(sub.State),
	}
	if sub.ManagementGroupID != nil {
		props["managementGroupId"] = sub.ManagementGroupID.String()
	}
	return &controlplane.ResourceResponse{
		ID:                req.Path(),
		Name:              sub.Name,
		Type:              req.ProviderNamespace + "/" + SubscriptionsResourceType,
		Properties:        props,
		ProvisioningState: controlplane.ProvisioningSucceeded,
		ResourceGUID:      resourceGUID(sub.ID),
	}
}

func (p *SubscriptionProvider) GetResource(ctx context.Context, req controlplane.ResourceRequest) (*controlplane.ResourceResponse, error) {
	sub, err := p.svc.FindSubscription(ctx, controlplane.SubscriptionFilter{Name: &req.ResourceName})
	if err != nil {
		return nil, err
	}
	return p.response(req, sub), nil
}

func (p *SubscriptionProvider) ListResources(ctx context.Context, req controlplane.ResourceRequest, opts ...controlplane.FindOptions) ([]*controlplane.ResourceResponse, string, error) {
	subs, n, err := p.svc.FindSubscriptions(ctx, controlplane.SubscriptionFilter{}, opts...)
	if err != nil {
		return nil, "", err
	}

	resps := make([]*controlplane.ResourceResponse, 0, n)
	for _, sub := range subs {
		resps = append(resps, p.response(req, sub))
	}
	return resps, listToken(opts, n), nil
}

// ResourceGroupProvider serves the resourcegroups resource type with the full
// capability set.
type ResourceGroupProvider struct {
	svc  controlplane.ResourceGroupService
	subs controlplane.SubscriptionService
}

var (
	_ controlplane.ResourceCreator = (*ResourceGroupProvider)(nil)
	_ controlplane.ResourceGetter  = (*ResourceGroupProvider)(nil)
	_ controlplane.ResourceDeleter = (*ResourceGroupProvider)(nil)
	_ controlplane.ResourceLister  = (*ResourceGroupProvider)(nil)
	_ controlplane.ActionExecutor  = (*ResourceGroupProvider)(nil)
)

func (p *ResourceGroupProvider) ResourceProviderKind() string {
	return "tenant.ResourceGroupProvider"
}

func (p *ResourceGroupProvider) response(req controlplane.ResourceRequest, rg *controlplane.ResourceGroup) *controlplane.ResourceResponse {
	req.ResourceName = rg.Name
	return &controlplane.ResourceResponse{
		ID:       req.Path(),
		Name:     rg.Name,
		Type:     req.ProviderNamespace + "/" + ResourceGroupsResourceType,
		Location: rg.Location,
		Tags:     rg.Tags,
		Properties: map[string]interface{}{
			"subscriptionId": rg.SubscriptionID.String(),
		},
		ProvisioningState: rg.ProvisioningState,
		ResourceGUID:      resourceGUID(rg.ID),
	}
}

func (p *ResourceGroupProvider) CreateOrUpdateResource(ctx context.Context, req controlplane.ResourceRequest) (*controlplane.ResourceResponse, error) {
	subID, err := decodeSubscriptionID(req)
	if err != nil {
		return nil, err
	}

	existing, err := p.svc.FindResourceGroup(ctx, controlplane.ResourceGroupFilter{
		SubscriptionID: &subID,
		Name:           &req.ResourceName,
	})
	if err == nil {
		rg, err := p.svc.UpdateResourceGroup(ctx, existing.ID, controlplane.ResourceGroupUpdate{
			Tags: bodyTags(req.Body),
		})
		if err != nil {
			return nil, err
		}
		return p.response(req, rg), nil
	}
	if errors.ErrorCode(err) != errors.ENotFound {
		return nil, err
	}

	location := req.Location
	if location == "" {
		location = bodyString(req.Body, "location")
	}

	rg := &controlplane.ResourceGroup{
		SubscriptionID: subID,
		Name:           req.ResourceName,
		Location:       location,
		Tags:           bodyTags(req.Body),
	}
	if err := p.svc.CreateResourceGroup(ctx, rg); err != nil {
		return nil, err
	}
	return p.response(req, rg), nil
}

func (p *ResourceGroupProvider) GetResource(ctx context.Context, req controlplane.ResourceRequest) (*controlplane.ResourceResponse, error) {
	subID, err := decodeSubscriptionID(req)
	if err != nil {
		return nil, err
	}

	rg, err := p.svc.FindResourceGroup(ctx, controlplane.ResourceGroupFilter{
		SubscriptionID: &subID,
		Name:           &req.ResourceName,
	})
	if err != nil {
		return nil, err
	}
	return p.response(req, rg), nil
}

func (p *ResourceGroupProvider) DeleteResource(ctx context.Context, req controlplane.ResourceRequest) error {
	subID, err := decodeSubscriptionID(req)
	if err != nil {
		return err
	}

	rg, err := p.svc.FindResourceGroup(ctx, controlplane.ResourceGroupFilter{
		SubscriptionID: &subID,
		Name:           &req.ResourceName,
	})
	if err != nil {
		return err
	}
	return p.svc.DeleteResourceGroup(ctx, rg.ID)
}

func (p *ResourceGroupProvider) ListResources(ctx context.Context, req controlplane.ResourceRequest, opts ...controlplane.FindOptions) ([]*controlplane.ResourceResponse, string, error) {
	subID, err := decodeSubscriptionID(req)
	if err != nil {
		return nil, "", err
	}

	rgs, n, err := p.svc.FindResourceGroups(ctx, controlplane.ResourceGroupFilter{SubscriptionID: &subID}, opts...)
	if err != nil {
		return nil, "", err
	}

	resps := make([]*controlplane.ResourceResponse, 0, n)
	for _, rg := range rgs {
		resps = append(resps, p.response(req, rg))
	}
	return resps, listToken(opts, n), nil
}

// ExecuteAction implements the checkNameAvailability action.
func (p *ResourceGroupProvider) ExecuteAction(ctx context.Context, req controlplane.ResourceRequest) (*controlplane.ResourceResponse, error) {
	if req.Action != "checkNameAvailability" {
		return nil, &errors.Error{
			Code: errors.EInvalid,
			Msg:  fmt.Sprintf("unknown action %q for resource groups", req.Action),
		}
	}

	subID, err := decodeSubscriptionID(req)
	if err != nil {
		return nil, err
	}

	available := false
	_, err = p.svc.FindResourceGroup(ctx, controlplane.ResourceGroupFilter{
		SubscriptionID: &subID,
		Name:           &req.ResourceName,
	})
	if errors.ErrorCode(err) == errors.ENotFound {
		available = true
	} else if err != nil {
		return nil, err
	}

	return &controlplane.ResourceResponse{
		ID:   req.Path(),
		Name: req.ResourceName,
		Type: req.ProviderNamespace + "/" + ResourceGroupsResourceType,
		Properties: map[string]interface{}{
			"nameAvailable": available,
		},
		ProvisioningState: controlplane.ProvisioningSucceeded,
	}, nil
}
