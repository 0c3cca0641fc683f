package conf

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/miralago/reportes-gw/backend"
	"github.com/miralago/reportes-gw/db/kvdb"
	"github.com/miralago/reportes-gw/db/kvdb/impls/redis"
	"github.com/miralago/reportes-gw/db/sqldb"
	"github.com/miralago/reportes-gw/db/sqldb/impls/mysql"
	"github.com/miralago/reportes-gw/db/sqldb/impls/pgsql"
	"github.com/miralago/reportes-gw/exportlog"
	"github.com/miralago/reportes-gw/schedjobs"
	"github.com/miralago/reportes-gw/security"
	"github.com/miralago/reportes-gw/svc"
	"github.com/miralago/reportes-gw/throttle"
	"github.com/miralago/reportes-gw/tpl"
	"github.com/miralago/reportes-gw/uds"
	"github.com/miralago/reportes-gw/web"
	"github.com/miralago/reportes-gw/web/session"
)

// Core - common config
// B = Throttle BucketID Type _ e.g. string, int64, etc
type Core[B comparable] struct {
	AppName             string                   `json:"app_name"`
	Listen              string                   `json:"listen"` // HTTP Server Listen IP:PORT Address
	Host                string                   `json:"host"`   // HTTP Host. Can be used to generate public url endpoints
	AppRoot             string                   `json:"-"`      // Filled from compiled paths
	RootCtx             context.Context          `json:"-"`      // Global Context with RootCancel
	RootCancel          context.CancelFunc       `json:"-"`      // CancelFunc for RootCtx
	UDSService          *uds.Service             `json:"-"`      // PrepareUDSService
	JobScheduler        *schedjobs.Scheduler     `json:"-"`      // PrepareJobScheduler
	WebService          *web.Service             `json:"-"`      // PrepareWebService
	ThrottleBucketStore *throttle.BucketStore[B] `json:"-"`      // PrepareThrottleBucketStore
	BackendHttpClient   *http.Client             `json:"-"`      // for requests to the restaurant backend
	KVDBConf            kvdb.Conf                `json:"-"`      // loadKVDBConf
	BackendKVDBClient   kvdb.Client              `json:"-"`      // prepareKVDBClient
	SQLDBConfs          map[string]*sqldb.Conf   `json:"-"`      // loadSQLDBConfs
	BackendSQLDBClients map[string]sqldb.Client  `json:"-"`      // prepareSQLDBClients
	WebSessionManager   *session.Manager         `json:"-"`      // PrepareWebSessions
	BackendClient       *backend.Client          `json:"-"`      // PrepareBackendClient
	HTMLTemplateStore   *tpl.HTMLTemplateStore   `json:"-"`      // PrepareHTMLTemplateStore
	ExportLog           *exportlog.Store         `json:"-"`      // PrepareExportLog

	services []svc.Service // Services to Manage
	done     chan error
}

// BaseInit - 1st step for initialization
// 1. set AppRoot
// 2. load config/.core.json file
// 3. prepare base fields
// 4. Start ShutdownSignalListener
func (c *Core[B]) BaseInit(appRoot string, rootCtx context.Context, rootCancel context.CancelFunc) error {
	c.AppRoot = appRoot
	envFilePath := filepath.Join(appRoot, "config", ".core.json")
	envBytes, err := os.ReadFile(envFilePath) // ([]byte, error)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(envBytes, c); err != nil {
		return err
	}
	c.RootCtx = rootCtx
	c.RootCancel = rootCancel
	c.BackendHttpClient = &http.Client{}
	c.startShutdownSignalListener()
	return nil
}

func (c *Core[B]) AddService(s svc.Service) {
	log.Printf("[INFO] adding service: %s", s.Name())
	c.services = append(c.services, s)
	log.Printf("[INFO] total services: %d", len(c.services))
}

func (c *Core[B]) StartServices() error {
	c.done = make(chan error, len(c.services))
	for _, s := range c.services {
		err := s.Start()
		if err != nil {
			return err
		}
		go func(s svc.Service) {
			err := <-s.Done()
			c.done <- err
		}(s) // pass the loop var to the param. otherwise, they are captured inside goroutine lazily
	}
	return nil
}

func (c *Core[B]) WaitServicesDone() error {
	for i := 0; i < len(c.services); i++ {
		if err := <-c.done; err != nil {
			return err
		}
	}
	return nil
}

func (c *Core[B]) StopServices() {
	for _, s := range c.services {
		s.Stop()
	}
}

var once sync.Once

func (c *Core[B]) startShutdownSignalListener() {
	once.Do(func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			sig := <-sigs
			log.Printf("[INFO] got signal [%s]. shutting down app [%s] ...", sig, c.AppName)
			c.RootCancel() // broadcast to all child services via Context.Done()
		}()
	})
	log.Printf("[INFO][CORE] shutdown signal listener started")
}

func (c *Core[B]) PrepareJobScheduler() {
	c.JobScheduler = schedjobs.NewScheduler(c.RootCtx)
	c.AddService(c.JobScheduler)
}

func (c *Core[B]) PrepareUDSService(sockPath string, cmdMap map[string]uds.CmdHnd) {
	c.UDSService = uds.NewService(c.RootCtx, sockPath, cmdMap)
	c.AddService(c.UDSService)
}

func (c *Core[B]) PrepareWebService(addr string, router http.Handler) {
	c.WebService = web.NewService(c.RootCtx, addr, router)
	c.AddService(c.WebService)
}

func (c *Core[B]) PrepareThrottleBucketStore(cleanupCycle time.Duration, cleanupOlderThan time.Duration) {
	c.ThrottleBucketStore = throttle.NewBucketStore[B](c.RootCtx, cleanupCycle, cleanupOlderThan)
	c.AddService(c.ThrottleBucketStore)
}

func (c *Core[B]) PrepareKVDatabase() error {
	// Load KV Database Config File
	err := c.loadKVDBConf()
	if err != nil {
		return err
	}
	if err = c.prepareKVDBClient(); err != nil {
		return err
	}
	return nil
}

func (c *Core[B]) loadKVDBConf() error {
	confFilePath := filepath.Join(c.AppRoot, "config", ".kv-databases.json")
	confBytes, err := os.ReadFile(confFilePath) // ([]byte, error)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(confBytes, &c.KVDBConf); err != nil {
		return err
	}
	return nil
}

func (c *Core[B]) prepareKVDBClient() error {
	switch c.KVDBConf.Type {
	case "redis":
		c.BackendKVDBClient = &redis.Client{Conf: &c.KVDBConf}
		if err := c.BackendKVDBClient.Init(); err != nil {
			return err
		}
	// case "memcached"
	default:
		return errors.New("unsupported key-value database type")
	}
	return nil
}

func (c *Core[B]) loadSQLDBConfs() error {
	confFilePath := filepath.Join(c.AppRoot, "config", ".sql-databases.json")
	confBytes, err := os.ReadFile(confFilePath) // ([]byte, error)
	if err != nil {
		return err
	}
	c.SQLDBConfs = make(map[string]*sqldb.Conf)
	if err = json.Unmarshal(confBytes, &c.SQLDBConfs); err != nil {
		return err
	}
	return nil
}

// PrepareSQLDatabases - Build & Init SQL DB Clients from the config file
func (c *Core[B]) PrepareSQLDatabases() error {
	err := c.loadSQLDBConfs()
	if err != nil {
		return err
	}
	if len(c.SQLDBConfs) == 0 {
		return nil
	}

	// Registering Supported Implementations
	pgsql.Register()
	mysql.Register()

	// Prepare New Clients
	c.BackendSQLDBClients = make(map[string]sqldb.Client)
	for dbName, sqlDBConf := range c.SQLDBConfs {
		dbClient, err := sqldb.New(sqlDBConf.Type, sqlDBConf)
		if err != nil {
			return err
		}
		if err = dbClient.Init(); err != nil {
			return err
		}
		c.BackendSQLDBClients[dbName] = dbClient
	}
	return nil
}

// PrepareExportLog binds the export audit store to one of the prepared SQL
// DB clients.
// Prerequisite: PrepareSQLDatabases
func (c *Core[B]) PrepareExportLog(dbName string) error {
	dbClient, ok := c.BackendSQLDBClients[dbName]
	if !ok {
		return fmt.Errorf("no SQL DB client named %q", dbName)
	}
	c.ExportLog = &exportlog.Store{
		DB:     dbClient,
		DBType: dbClient.GetConf().Type,
	}
	return nil
}

// PrepareWebSessions prepares WebSessionManager
// Prerequisite: BackendKVDBClient
func (c *Core[B]) PrepareWebSessions() error {
	confFilePath := filepath.Join(c.AppRoot, "config", ".web-session.json")
	confBytes, err := os.ReadFile(confFilePath) // ([]byte, error)
	if err != nil {
		return err
	}
	if c.BackendKVDBClient == nil {
		return errors.New("backend KVDB client not ready")
	}
	mgr := &session.Manager{
		AppName:           c.AppName,
		BackendKVDBClient: c.BackendKVDBClient,
	}
	if err = json.Unmarshal(confBytes, &mgr.Conf); err != nil {
		return err
	}
	// Web Login Session Cipher
	cipher, err := security.NewXChaCha20Poly1305CipherBase64([]byte(mgr.Conf.EncryptionKey))
	if err != nil {
		return fmt.Errorf("NewXChaCha20Poly1305Cipher: %v", err)
	}
	mgr.Cipher = cipher

	c.WebSessionManager = mgr
	return nil
}

// PrepareBackendClient to Send Requests to the Restaurant Backend API
// Prerequisite: BackendHttpClient
func (c *Core[B]) PrepareBackendClient() error {
	confFilePath := filepath.Join(c.AppRoot, "config", ".backend-api.json")
	confBytes, err := os.ReadFile(confFilePath) // ([]byte, error)
	if err != nil {
		return err
	}
	if c.BackendHttpClient == nil {
		return errors.New("backend http client not ready")
	}
	c.BackendClient = &backend.Client{
		Client: c.BackendHttpClient,
	}
	var backendConf backend.Conf
	if err = json.Unmarshal(confBytes, &backendConf); err != nil {
		return err
	}
	c.BackendClient.Conf = &backendConf
	return nil
}

func (c *Core[B]) PrepareHTMLTemplateStore() error {
	c.HTMLTemplateStore = tpl.NewHTMLTemplateStore()
	return c.HTMLTemplateStore.LoadBaseTemplates(
		filepath.Join(c.AppRoot, "templates", "html"),
	)
}

func (c *Core[B]) ResourceCleanUp() {
	log.Println("[INFO] App Resource Cleaning Up...")
	// Clean up DB clients ----
	if c.BackendKVDBClient != nil {
		if err := c.BackendKVDBClient.Close(); err != nil {
			log.Println("[ERROR] Failed to close KV database client")
		}
	}
	for name, sqlDBClient := range c.BackendSQLDBClients {
		dbType := sqlDBClient.GetConf().Type
		log.Printf("[INFO][%s] Closing %q SQL DB client", dbType, name)
		err := sqlDBClient.Close()
		if err != nil {
			log.Printf("[ERROR][%s] Failed to close %q SQL DB client", dbType, name)
		} else {
			log.Printf("[INFO][%s] %q SQL DB client closed", dbType, name)
		}
	}
	//----
	log.Println("[INFO] App Resource Cleanup Complete")
}
