// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package supervisor runs Marquee's long-lived services under suture v4.

# Tree

	RootSupervisor ("marquee")
	├── DataSupervisor ("data-layer")
	│   ├── PoolWarmerService      (pool-warmer)
	│   └── PeriodicService        (badger-gc, badger backend only)
	├── ControlSupervisor ("control-layer")
	│   ├── ScheduleWatchService   (schedule-watcher, file-backed schedules)
	│   └── PeriodicService        (selection-cache-purge)
	└── APISupervisor ("api-layer")
	    └── APIServerService       (api-server)

Each layer restarts its own children with exponential backoff. Supervisor
events are logged through sutureslog on top of the zerolog-backed slog
handler from the logging package.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewPoolWarmerService(builder, services.PoolWarmerConfig{WarmOnStart: true}, logger))
	tree.AddAPIService(services.NewAPIServerService(router, services.APIServerConfig{Addr: ":8080"}, logger))
	return tree.Serve(ctx)
*/
package supervisor
