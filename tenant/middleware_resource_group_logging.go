package tenant

import (
	"context"
	"fmt"
	"time"

	controlplane "github.com/ITlusions/ITL.ControlPlane.SDK-sub001"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform"
	"go.uber.org/zap"
)

type ResourceGroupLogger struct {
	logger               *zap.Logger
	resourceGroupService controlplane.ResourceGroupService
}

// NewResourceGroupLogger returns a logging service middleware for the
// Resource Group Service.
func NewResourceGroupLogger(log *zap.Logger, s controlplane.ResourceGroupService) *ResourceGroupLogger {
	return &ResourceGroupLogger{
		logger:               log,
		resourceGroupService: s,
	}
}

var _ controlplane.ResourceGroupService = (*ResourceGroupLogger)(nil)

func (l *ResourceGroupLogger) FindResourceGroupByID(ctx context.Context, id platform.ID) (rg *controlplane.ResourceGroup, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			msg := fmt.Sprintf("failed to find resource group with ID %v", id)
			l.logger.Debug(msg, zap.Error(err), dur)
			return
		}
		l.logger.Debug("resource group find by ID", dur)
	}(time.Now())
	return l.resourceGroupService.FindResourceGroupByID(ctx, id)
}

func (l *ResourceGroupLogger) FindResourceGroup(ctx context.Context, filter controlplane.ResourceGroupFilter) (rg *controlplane.ResourceGroup, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to find resource group matching the given filter", zap.Error(err), dur)
			return
		}
		l.logger.Debug("resource group find", dur)
	}(time.Now())
	return l.resourceGroupService.FindResourceGroup(ctx, filter)
}

func (l *ResourceGroupLogger) FindResourceGroups(ctx context.Context, filter controlplane.ResourceGroupFilter, opt ...controlplane.FindOptions) (rgs []*controlplane.ResourceGroup, n int, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to find resource groups matching the given filter", zap.Error(err), dur)
			return
		}
		l.logger.Debug("resource groups find", dur)
	}(time.Now())
	return l.resourceGroupService.FindResourceGroups(ctx, filter, opt...)
}

func (l *ResourceGroupLogger) CreateResourceGroup(ctx context.Context, rg *controlplane.ResourceGroup) (err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to create resource group", zap.Error(err), dur)
			return
		}
		l.logger.Debug("resource group create", dur)
	}(time.Now())
	return l.resourceGroupService.CreateResourceGroup(ctx, rg)
}

func (l *ResourceGroupLogger) UpdateResourceGroup(ctx context.Context, id platform.ID, upd controlplane.ResourceGroupUpdate) (rg *controlplane.ResourceGroup, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to update resource group", zap.Error(err), dur)
			return
		}
		l.logger.Debug("resource group update", dur)
	}(time.Now())
	return l.resourceGroupService.UpdateResourceGroup(ctx, id, upd)
}

func (l *ResourceGroupLogger) DeleteResourceGroup(ctx context.Context, id platform.ID) (err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			msg := fmt.Sprintf("failed to delete resource group with ID %v", id)
			l.logger.Debug(msg, zap.Error(err), dur)
			return
		}
		l.logger.Debug("resource group delete", dur)
	}(time.Now())
	return l.resourceGroupService.DeleteResourceGroup(ctx, id)
}
