package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/miralago/reportes-gw/conf"
	"github.com/miralago/reportes-gw/schedjobs"
	"github.com/miralago/reportes-gw/throttle"
	"github.com/miralago/reportes-gw/uds"
	"github.com/miralago/reportes-gw/web"
)

func main() {
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	core := &conf.Core[string]{}

	appRoot, err := os.Executable()
	if err != nil {
		log.Fatalf("[ERROR] cannot resolve app root: %v", err)
	}
	appRoot = filepath.Dir(appRoot)

	if err = core.BaseInit(appRoot, rootCtx, rootCancel); err != nil {
		log.Fatalf("[ERROR] base init: %v", err)
	}

	if err = core.PrepareKVDatabase(); err != nil {
		log.Fatalf("[ERROR] kv database: %v", err)
	}
	if err = core.PrepareSQLDatabases(); err != nil {
		log.Fatalf("[ERROR] sql databases: %v", err)
	}
	if err = core.PrepareExportLog("auditoria"); err != nil {
		log.Fatalf("[ERROR] export log: %v", err)
	}
	if err = core.PrepareWebSessions(); err != nil {
		log.Fatalf("[ERROR] web sessions: %v", err)
	}
	if err = core.PrepareBackendClient(); err != nil {
		log.Fatalf("[ERROR] backend client: %v", err)
	}
	if err = core.PrepareHTMLTemplateStore(); err != nil {
		log.Fatalf("[ERROR] html templates: %v", err)
	}
	if err = combinePageTemplates(core); err != nil {
		log.Fatalf("[ERROR] html templates: %v", err)
	}

	core.PrepareThrottleBucketStore(5*time.Minute, 30*time.Minute)
	core.ThrottleBucketStore.SetBucketGroup(web.ThrottleGroupPDF, &throttle.BucketConf{
		Burst:     3,
		Increment: 1,
		Period:    10 * time.Second,
	})

	core.PrepareJobScheduler()
	registerNightlyPurge(core)

	pages := &web.Pages{
		AppName:   core.AppName,
		Backend:   core.BackendClient,
		Sessions:  core.WebSessionManager,
		Templates: core.HTMLTemplateStore,
		Throttle:  core.ThrottleBucketStore,
		ExportLog: core.ExportLog,
		KVDB:      core.BackendKVDBClient,
		// NewPDFWriter is wired by the deployment build. Without a writer the
		// export endpoints answer 503 and every page still works.
	}
	core.PrepareWebService(core.Listen, web.BuildRouter(pages))

	runDir := filepath.Join(appRoot, "run")
	if err = os.MkdirAll(runDir, 0o755); err != nil {
		log.Fatalf("[ERROR] run dir: %v", err)
	}
	core.PrepareUDSService(filepath.Join(runDir, "gateway.sock"), adminCommands(core))

	if err = core.StartServices(); err != nil {
		log.Fatalf("[ERROR] starting services: %v", err)
	}
	if err = core.WaitServicesDone(); err != nil {
		log.Printf("[ERROR] service stopped with error: %v", err)
	}
	core.StopServices()
	core.ResourceCleanUp()
}

// combinePageTemplates composes every page body into the shared layout
func combinePageTemplates(core *conf.Core[string]) error {
	pageKeys := []string{
		"login",
		"facturacion",
		"arqueo",
		"reportes/clientes",
		"reportes/empleados",
		"reportes/usuarios",
		"reportes/platillos",
		"reportes/ventas-mesa",
		"reportes/ventas-mes",
		"reportes/ventas-platillo",
	}
	for _, key := range pageKeys {
		if err := core.HTMLTemplateStore.Combine(key, "layout", key); err != nil {
			return err
		}
	}
	return nil
}

// registerNightlyPurge keeps the export audit table bounded: entries older
// than 90 days go away at 03:30
func registerNightlyPurge(core *conf.Core[string]) {
	job := schedjobs.NewNightlyCronJob("purge-export-log", 3, 30)
	job.Task = func() error {
		ctx, cancel := context.WithTimeout(core.RootCtx, 30*time.Second)
		defer cancel()
		cutoff := time.Now().AddDate(0, 0, -90)
		removed, err := core.ExportLog.PurgeOlderThan(ctx, cutoff)
		if err != nil {
			return err
		}
		log.Printf("[INFO][JOBS] export log purge removed %d entries", removed)
		return nil
	}
	core.JobScheduler.AddCronJob(job)
}

// adminCommands builds the operator command map served on the unix socket
func adminCommands(core *conf.Core[string]) map[string]uds.CmdHnd {
	return map[string]uds.CmdHnd{
		"exports-recent": {
			Desc:  "list the most recent PDF exports",
			Usage: "exports-recent [limit]",
			Fn: func(args []string, w io.Writer) error {
				limit := 20
				if len(args) > 0 {
					n, err := strconv.Atoi(args[0])
					if err != nil || n <= 0 {
						return fmt.Errorf("invalid limit %q", args[0])
					}
					limit = n
				}
				ctx, cancel := context.WithTimeout(core.RootCtx, 10*time.Second)
				defer cancel()
				entries, err := core.ExportLog.ListRecent(ctx, limit)
				if err != nil {
					return err
				}
				for _, e := range entries {
					_, _ = fmt.Fprintf(w, "%s  %-10s %-20s %s\n",
						e.GeneradoEn.Format(time.RFC3339), e.Reporte, e.Usuario, e.ID)
				}
				_, _ = fmt.Fprintf(w, "total: %d\n", len(entries))
				return nil
			},
		},
		"exports-purge": {
			Desc:  "purge export log entries older than N days",
			Usage: "exports-purge <days>",
			Fn: func(args []string, w io.Writer) error {
				if len(args) != 1 {
					return fmt.Errorf("usage: exports-purge <days>")
				}
				days, err := strconv.Atoi(args[0])
				if err != nil || days <= 0 {
					return fmt.Errorf("invalid days %q", args[0])
				}
				ctx, cancel := context.WithTimeout(core.RootCtx, 30*time.Second)
				defer cancel()
				removed, err := core.ExportLog.PurgeOlderThan(ctx, time.Now().AddDate(0, 0, -days))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(w, "removed %d entries\n", removed)
				return nil
			},
		},
		"session-check": {
			Desc:  "report whether a web session id is live",
			Usage: "session-check <session-id>",
			Fn: func(args []string, w io.Writer) error {
				if len(args) != 1 {
					return fmt.Errorf("usage: session-check <session-id>")
				}
				ctx, cancel := context.WithTimeout(core.RootCtx, 10*time.Second)
				defer cancel()
				found, err := core.FindWebSessionInKVDB(ctx, args[0])
				if err != nil {
					return err
				}
				if found {
					_, _ = fmt.Fprintln(w, "live")
				} else {
					_, _ = fmt.Fprintln(w, "not found")
				}
				return nil
			},
		},
		"exports-show": {
			Desc:  "show one export log entry by artifact id",
			Usage: "exports-show <artifact-id>",
			Fn: func(args []string, w io.Writer) error {
				if len(args) != 1 {
					return fmt.Errorf("usage: exports-show <artifact-id>")
				}
				ctx, cancel := context.WithTimeout(core.RootCtx, 10*time.Second)
				defer cancel()
				e, err := core.ExportLog.Find(ctx, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(w, "%s  %-10s %-20s %s\n",
					e.GeneradoEn.Format(time.RFC3339), e.Reporte, e.Usuario, e.ID)
				return nil
			},
		},
		"cronjobs": {
			Desc:  "list registered cron jobs",
			Usage: "cronjobs",
			Fn: func(_ []string, w io.Writer) error {
				for _, job := range core.JobScheduler.GetCronJobs() {
					_, _ = fmt.Fprintf(w, "%s\n", job.ID)
				}
				return nil
			},
		},
		"cronjobs-delete": {
			Desc:  "unregister a cron job by id",
			Usage: "cronjobs-delete <job-id>",
			Fn: func(args []string, w io.Writer) error {
				if len(args) != 1 {
					return fmt.Errorf("usage: cronjobs-delete <job-id>")
				}
				core.JobScheduler.DeleteCronJob(args[0])
				_, _ = fmt.Fprintln(w, "done")
				return nil
			},
		},
	}
}
