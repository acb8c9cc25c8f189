package app

import (
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/oskarw/mellovote/internal/handlers"
	"github.com/oskarw/mellovote/internal/logger"
	"github.com/oskarw/mellovote/internal/session"
	"github.com/oskarw/mellovote/internal/store"
	"github.com/oskarw/mellovote/internal/websocket"
)

// App holds all application dependencies
type App struct {
	log      logger.Logger
	handlers *handlers.Handlers
	manager  *session.Manager
	store    store.SnapshotStore
}

// New creates and initializes a new application instance. The last durable
// snapshot, if any, is restored before the server starts taking requests.
func New(log logger.Logger, st store.SnapshotStore) *App {
	manager := session.NewManager(log, st)

	hub := websocket.New(log)
	hub.Start()
	manager.SetBroadcaster(hub)

	h := handlers.New(manager, hub, log, func() string {
		return getPreferredIP(realNetworkProvider{})
	})

	return &App{
		log:      log,
		handlers: h,
		manager:  manager,
		store:    st,
	}
}

// Manager returns the session manager (for shutdown hooks)
func (a *App) Manager() *session.Manager {
	return a.manager
}

// Router returns the configured HTTP router
func (a *App) Router() chi.Router {
	return a.handlers.Router()
}

// Close releases app resources
func (a *App) Close() error {
	return a.store.Close()
}

// Run starts the HTTP server
func (a *App) Run(addr string) error {
	ip := getPreferredIP(realNetworkProvider{})
	a.log.Info("Server starting", "url", fmt.Sprintf("http://%s%s", ip, addr))
	return http.ListenAndServe(addr, a.Router())
}

// networkInterface wraps net.Interface for testing
type networkInterface interface {
	Flags() net.Flags
	Addrs() ([]net.Addr, error)
}

// realInterface wraps a real net.Interface
type realInterface struct {
	iface net.Interface
}

func (r realInterface) Flags() net.Flags {
	return r.iface.Flags
}

func (r realInterface) Addrs() ([]net.Addr, error) {
	return r.iface.Addrs()
}

// networkProvider is an interface for getting network interfaces (for testing)
type networkProvider interface {
	Interfaces() ([]networkInterface, error)
}

// realNetworkProvider implements networkProvider using the actual net package
type realNetworkProvider struct{}

func (realNetworkProvider) Interfaces() ([]networkInterface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	result := make([]networkInterface, len(ifaces))
	for i, iface := range ifaces {
		result[i] = realInterface{iface: iface}
	}
	return result, nil
}

// getPreferredIP returns the best IP address for LAN access. Participants
// scan a QR code with this address, so private-network addresses win.
// Falls back to localhost if no suitable address is found.
func getPreferredIP(provider networkProvider) string {
	ifaces, err := provider.Interfaces()
	if err != nil {
		return "localhost"
	}

	var candidates []net.IP

	for _, iface := range ifaces {
		flags := iface.Flags()
		if flags&net.FlagUp == 0 || flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}

			if ip == nil || ip.To4() == nil {
				continue
			}
			if ip.IsLoopback() {
				continue
			}

			candidates = append(candidates, ip)
		}
	}

	for _, ip := range candidates {
		ipStr := ip.String()
		if strings.HasPrefix(ipStr, "192.168.") ||
			strings.HasPrefix(ipStr, "10.") ||
			isPrivate172(ip) {
			return ipStr
		}
	}

	if len(candidates) > 0 {
		return candidates[0].String()
	}

	return "localhost"
}

// isPrivate172 checks if IP is in 172.16.0.0/12 range
func isPrivate172(ip net.IP) bool {
	if ip4 := ip.To4(); ip4 != nil {
		return ip4[0] == 172 && ip4[1] >= 16 && ip4[1] <= 31
	}
	return false
}
