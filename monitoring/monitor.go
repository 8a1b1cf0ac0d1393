// Package monitoring turns a running engine into a web server that shows the
// scheduler, the components, and their parameters, and that can pause the
// scheduler or assign parameters.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"sync"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/partwright/component"
	"github.com/sarchlab/partwright/idgen"
	"github.com/sarchlab/partwright/monitoring/web"
	"github.com/sarchlab/partwright/param"
	"github.com/sarchlab/partwright/plugins"
	"github.com/sarchlab/partwright/scheduling"
)

// Monitor can turn a design session into a server and allows external
// monitoring and controlling of the session.
type Monitor struct {
	pool       *scheduling.Pool
	registry   *plugins.Registry
	portNumber int
	barIDs     idgen.Generator

	componentsLock sync.RWMutex
	components     []component.Component

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{
		barIDs: idgen.WithPrefix(idgen.NewSequential(), "Progress"),
	}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterScheduler registers the pool the components run on.
func (m *Monitor) RegisterScheduler(p *scheduling.Pool) {
	m.pool = p
}

// RegisterRegistry registers the designers available in the session.
func (m *Monitor) RegisterRegistry(r *plugins.Registry) {
	m.registry = r
}

// RegisterComponent registers a component to be monitored.
func (m *Monitor) RegisterComponent(c component.Component) {
	m.componentsLock.Lock()
	defer m.componentsLock.Unlock()

	m.components = append(m.components, c)
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        m.barIDs.Generate(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// Handler returns the router that serves the API and the web page.
func (m *Monitor) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/pause", m.pauseScheduler)
	r.HandleFunc("/api/continue", m.continueScheduler)
	r.HandleFunc("/api/scheduler", m.schedulerStatus)
	r.HandleFunc("/api/list_designers", m.listDesigners)
	r.HandleFunc("/api/list_components", m.listComponents)
	r.HandleFunc("/api/component/{name}", m.listComponentDetails)
	r.HandleFunc("/api/field/{json}", m.listFieldValue)
	r.HandleFunc("/api/parameters/{name}", m.listParameters)
	r.HandleFunc("/api/assign/{name}/{key}", m.assignParameter).
		Methods(http.MethodPost)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)
	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// StartServer starts the monitor as a web server and returns its address.
func (m *Monitor) StartServer() string {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring design session with %s\n", url)

	handler := m.Handler()

	go func() {
		err := http.Serve(listener, handler)
		dieOnErr(err)
	}()

	return url
}

func (m *Monitor) pauseScheduler(w http.ResponseWriter, _ *http.Request) {
	if m.pool == nil {
		http.Error(w, "no scheduler", http.StatusServiceUnavailable)
		return
	}

	m.pool.Pause(true)
	w.WriteHeader(http.StatusOK)
}

func (m *Monitor) continueScheduler(w http.ResponseWriter, _ *http.Request) {
	if m.pool == nil {
		http.Error(w, "no scheduler", http.StatusServiceUnavailable)
		return
	}

	m.pool.Pause(false)
	w.WriteHeader(http.StatusOK)
}

type schedulerRsp struct {
	Name       string            `json:"name"`
	NumWorkers int               `json:"num_workers"`
	NumPending int               `json:"num_pending"`
	Paused     bool              `json:"paused"`
	Terminated bool              `json:"terminated"`
	Workers    map[string]string `json:"workers"`
}

func (m *Monitor) schedulerStatus(w http.ResponseWriter, _ *http.Request) {
	if m.pool == nil {
		http.Error(w, "no scheduler", http.StatusServiceUnavailable)
		return
	}

	rsp := schedulerRsp{
		Name:       m.pool.Name(),
		NumWorkers: m.pool.NumWorkers(),
		NumPending: m.pool.NumPending(),
		Paused:     m.pool.IsPaused(),
		Terminated: m.pool.IsTerminated(),
		Workers:    make(map[string]string),
	}

	for id, s := range m.pool.WorkerStates() {
		rsp.Workers[id] = s.String()
	}

	writeJSON(w, rsp)
}

type designerRsp struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Plugin   string `json:"plugin"`
	Version  string `json:"version"`
}

func (m *Monitor) listDesigners(w http.ResponseWriter, _ *http.Request) {
	rsp := []designerRsp{}

	if m.registry != nil {
		for _, d := range m.registry.Designers() {
			entry := designerRsp{Name: d.Name(), Category: d.Category()}
			if mod, ok := m.registry.Provider(d.Name()); ok {
				entry.Plugin = mod.API().PluginName()
				entry.Version = mod.API().PluginVersion()
			}

			rsp = append(rsp, entry)
		}
	}

	writeJSON(w, rsp)
}

func (m *Monitor) listComponents(w http.ResponseWriter, _ *http.Request) {
	m.componentsLock.RLock()
	names := make([]string, 0, len(m.components))
	for _, c := range m.components {
		names = append(names, c.Name())
	}
	m.componentsLock.RUnlock()

	writeJSON(w, names)
}

func (m *Monitor) listComponentDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	comp := m.findComponentOr404(w, name)
	if comp == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(comp)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

type fieldReq struct {
	CompName  string `json:"comp_name,omitempty"`
	FieldName string `json:"field_name,omitempty"`
}

func (m *Monitor) listFieldValue(w http.ResponseWriter, r *http.Request) {
	jsonString := mux.Vars(r)["json"]
	req := fieldReq{}

	err := json.Unmarshal([]byte(jsonString), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	comp := m.findComponentOr404(w, req.CompName)
	if comp == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(comp)
	serializer.SetMaxDepth(1)

	err = serializer.SetEntryPoint(strings.Split(req.FieldName, "."))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = serializer.Serialize(w)
	dieOnErr(err)
}

type parameterRsp struct {
	Key     string   `json:"key"`
	Name    string   `json:"name"`
	Symbol  string   `json:"symbol"`
	Unit    string   `json:"unit"`
	Value   float64  `json:"value"`
	Default float64  `json:"default"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
}

func describeParameter(key param.Key, p *param.Parameter) parameterRsp {
	rsp := parameterRsp{
		Key:     string(key),
		Name:    p.Name(),
		Symbol:  p.Symbol(),
		Unit:    string(p.Unit()),
		Value:   p.Value().Value,
		Default: p.Default().Value,
	}

	if p.IsLimited() {
		min, max := p.Limits()
		rsp.Min, rsp.Max = &min.Value, &max.Value
	}

	return rsp
}

func (m *Monitor) listParameters(w http.ResponseWriter, r *http.Request) {
	comp := m.findComponentOr404(w, mux.Vars(r)["name"])
	if comp == nil {
		return
	}

	rsp := []parameterRsp{}
	comp.Parameters().Range(func(k param.Key, p *param.Parameter) bool {
		rsp = append(rsp, describeParameter(k, p))
		return true
	})

	writeJSON(w, rsp)
}

func (m *Monitor) assignParameter(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	comp := m.findComponentOr404(w, vars["name"])
	if comp == nil {
		return
	}

	p, err := comp.Parameters().Get(param.Key(vars["key"]))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	value, err := strconv.ParseFloat(r.URL.Query().Get("value"), 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := p.AssignValue(value); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	writeJSON(w, describeParameter(param.Key(vars["key"]), p))
}

func (m *Monitor) findComponentOr404(
	w http.ResponseWriter,
	name string,
) component.Component {
	m.componentsLock.RLock()
	defer m.componentsLock.RUnlock()

	for _, c := range m.components {
		if c.Name() == name {
			return c
		}
	}

	w.WriteHeader(http.StatusNotFound)
	_, err := w.Write([]byte("Component not found"))
	dieOnErr(err)

	return nil
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	bars := make([]progressBarRsp, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		bars = append(bars, b.snapshot())
	}

	writeJSON(w, bars)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
