package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/buildingai/cozepkg/internal/domain/setting"
	"github.com/buildingai/cozepkg/internal/shared/logger"
	"github.com/buildingai/cozepkg/internal/shared/version"
)

type Outcome string

const (
	OutcomeInstalled     Outcome = "installed"
	OutcomeInstallFailed Outcome = "install_failed"
	OutcomeUpToDate      Outcome = "up_to_date"
	OutcomeUpgraded      Outcome = "upgraded"
	OutcomeUpgradeFailed Outcome = "upgrade_failed"
	OutcomeSkipped       Outcome = "skipped"
)

var ErrUnknownVersion = errors.New("no upgrade registered for version")

// Orchestrator decides at boot whether to install, upgrade or do nothing.
type Orchestrator struct {
	version   string
	flags     FlagStore
	markers   *Markers
	installer *Installer
	steps     map[string]UpgradeStep
	logger    logger.Interface
}

func NewOrchestrator(
	appVersion string,
	flags FlagStore,
	markers *Markers,
	installer *Installer,
	steps map[string]UpgradeStep,
	log logger.Interface,
) *Orchestrator {
	return &Orchestrator{
		version:   appVersion,
		flags:     flags,
		markers:   markers,
		installer: installer,
		steps:     steps,
		logger:    log,
	}
}

// Run installs or upgrades as needed. A returned error has already been
// logged; callers may keep serving.
func (o *Orchestrator) Run(ctx context.Context) (Outcome, error) {
	if !o.CheckInstalled(ctx) {
		return o.install(ctx)
	}

	if o.version == "" || o.version == "unknown" {
		o.logger.Warnw("application version unknown, skipping upgrade check")
		return OutcomeSkipped, nil
	}
	if o.markers.HasStamp(o.version) {
		o.logger.Debugw("already on current version", "version", o.version)
		return OutcomeUpToDate, nil
	}
	return o.upgrade(ctx)
}

// CheckInstalled trusts the dictionary flag and repairs the marker file
// from it. The file decides alone when the dictionary is unreachable.
func (o *Orchestrator) CheckInstalled(ctx context.Context) bool {
	installed, err := o.flags.GetBool(ctx, setting.GroupSystem, setting.KeyIsInstalled, false)
	if err != nil {
		fileSays := o.markers.Installed()
		o.logger.Warnw("install flag unreadable, falling back to marker file", "installed", fileSays, "error", err)
		return fileSays
	}

	fileSays := o.markers.Installed()
	switch {
	case installed && !fileSays:
		if err := o.markers.WriteInstalled(o.version, true); err != nil {
			o.logger.Errorw("failed to recreate installed marker", "error", err)
		} else {
			o.logger.Infow("installed marker recreated from install flag")
		}
	case !installed && fileSays:
		o.logger.Warnw("installed marker present but install flag unset, reinstalling")
	}
	return installed
}

func (o *Orchestrator) install(ctx context.Context) (Outcome, error) {
	o.logger.Infow("starting fresh install", "version", o.version)
	if err := o.installer.Run(ctx); err != nil {
		o.logger.Errorw("install aborted", "error", err)
		return OutcomeInstallFailed, err
	}

	if err := o.flags.SetBool(ctx, setting.GroupSystem, setting.KeyIsInstalled, true, "System installed"); err != nil {
		o.logger.Errorw("failed to set install flag", "error", err)
	}
	if err := o.markers.WriteInstalled(o.version, false); err != nil {
		o.logger.Errorw("failed to write installed marker", "error", err)
	}
	o.stamp()
	o.logger.Infow("install completed", "version", o.version)
	return OutcomeInstalled, nil
}

func (o *Orchestrator) upgrade(ctx context.Context) (Outcome, error) {
	if stamps, err := o.markers.Stamps(); err == nil {
		if latest := version.Latest(stamps); latest != "" && version.Compare(o.version, latest) < 0 {
			o.logger.Warnw("running version is older than an applied version", "running", o.version, "latest_applied", latest)
		}
	}

	if err := o.installer.SyncPermissions(ctx); err != nil {
		o.logger.Errorw("permission sync failed during upgrade", "error", err)
	}

	step, ok := o.steps[o.version]
	if !ok {
		o.logger.Infow("no data migration for version", "version", o.version)
		o.stamp()
		return OutcomeUpgraded, nil
	}

	o.logger.Infow("applying upgrade", "version", o.version)
	if err := step.Apply(ctx); err != nil {
		o.logger.Errorw("upgrade failed", "version", o.version, "error", err)
		return OutcomeUpgradeFailed, fmt.Errorf("upgrade %s: %w", o.version, err)
	}
	o.stamp()
	o.logger.Infow("upgrade completed", "version", o.version)
	return OutcomeUpgraded, nil
}

// Rollback reverts the data migration of v and removes its stamp.
func (o *Orchestrator) Rollback(ctx context.Context, v string) error {
	step, ok := o.steps[v]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVersion, v)
	}
	if err := step.Rollback(ctx); err != nil {
		return fmt.Errorf("rollback %s: %w", v, err)
	}
	if err := o.markers.RemoveStamp(v); err != nil {
		return err
	}
	o.logger.Infow("rollback completed", "version", v)
	return nil
}

func (o *Orchestrator) stamp() {
	if o.version == "" || o.version == "unknown" {
		return
	}
	if err := o.markers.WriteStamp(o.version); err != nil {
		o.logger.Errorw("failed to write version stamp", "version", o.version, "error", err)
	}
}
