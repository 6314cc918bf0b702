package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	log "github.com/inconshreveable/log15"
	"github.com/superchain-meme/launchpad/core"
	"github.com/superchain-meme/launchpad/render"
	"github.com/superchain-meme/launchpad/types"
)

const apiVersion = "v1"

type Server struct {
	port       int
	launchpad  core.Launchpad
	feed       *feed
	mutex      sync.Mutex
	counter    int
	httpServer *http.Server
}

func NewServer(port int, launchpad core.Launchpad) *Server {
	f := newFeed()
	launchpad.AddHook(f)
	return &Server{
		port:      port,
		launchpad: launchpad,
		feed:      f,
	}
}

func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.port)
	httpServer := &http.Server{Addr: addr, Handler: s.Handler()}
	s.httpServer = httpServer
	log.Info(fmt.Sprintf("Listening on %v", addr))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		panic(err)
	}
}

func (s *Server) Stop() {
	if s.httpServer == nil {
		return
	}
	if err := s.httpServer.Shutdown(context.Background()); err != nil {
		panic(err)
	}
}

func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Path("/").HandlerFunc(s.page).Methods("GET")
	router.Path("/launch").HandlerFunc(s.submitForm).Methods("POST")
	s.initRouter(router.PathPrefix("/{version}").Subrouter())
	headersOk := handlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type"})
	originsOk := handlers.AllowedOrigins([]string{"*"})
	methodsOk := handlers.AllowedMethods([]string{"GET", "HEAD", "POST", "OPTIONS"})
	return handlers.CORS(originsOk, headersOk, methodsOk)(s.requestFilter(router))
}

func (s *Server) requestFilter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqId := s.generateReqId()
		log.Debug(fmt.Sprintf("Got request %v, url: %v, from: %v", reqId, r.URL, GetIP(r)))
		defer log.Debug(fmt.Sprintf("Completed request %v", reqId))
		err := r.ParseForm()
		if err != nil {
			log.Error(fmt.Sprintf("Unable to parse request %v: %v", reqId, err))
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		r.URL.Path = strings.ToLower(r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) generateReqId() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	id := s.counter
	s.counter++
	return id
}

func GetIP(r *http.Request) string {
	header := r.Header.Get("X-Forwarded-For")
	if len(header) > 0 {
		return strings.Split(header, ", ")[0]
	}
	if strings.Contains(r.RemoteAddr, ":") {
		return strings.Split(r.RemoteAddr, ":")[0]
	}
	return r.RemoteAddr
}

func (s *Server) initRouter(router *mux.Router) {
	router.Path("/launch").HandlerFunc(s.launch).Methods("POST")
	router.Path("/launches").HandlerFunc(s.launches).Methods("GET")
	router.Path("/state").HandlerFunc(s.state).Methods("GET")
	router.Path("/feed").HandlerFunc(s.subscribe).Methods("GET")
}

func checkVersion(r *http.Request) error {
	if mux.Vars(r)["version"] != apiVersion {
		return types.ErrUnsupportedVersion
	}
	return nil
}

// page keeps the submitted form values while a deployment is pending or after it failed.
func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	var name, symbol string
	if state := s.launchpad.State(); state.Phase == core.PhaseSubmitting || state.LastOutcome == core.PhaseFailed {
		name, symbol = r.FormValue("name"), r.FormValue("symbol")
	}
	s.renderPage(w, name, symbol)
}

// submitForm starts the deployment in the background, the outcome shows up as a
// notification on the page.
func (s *Server) submitForm(w http.ResponseWriter, r *http.Request) {
	name, symbol := r.FormValue("name"), r.FormValue("symbol")
	if _, err := s.launchpad.Submit(context.Background(), name, symbol); err != nil {
		log.Warn(fmt.Sprintf("Launch not started: %v", err))
		s.renderPage(w, name, symbol)
		return
	}
	query := url.Values{"name": {name}, "symbol": {symbol}}
	http.Redirect(w, r, "/?"+query.Encode(), http.StatusSeeOther)
}

func (s *Server) renderPage(w http.ResponseWriter, name, symbol string) {
	tokens, err := s.launchpad.Tokens()
	if err != nil {
		log.Error(fmt.Sprintf("Unable to get tokens: %v", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	state := s.launchpad.State()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = render.RenderPage(w, render.Page{
		Tokens:          tokens,
		Notifications:   s.launchpad.Notifications(),
		WalletConnected: state.WalletConnected,
		Deploying:       state.Phase == core.PhaseSubmitting,
		Name:            name,
		Symbol:          symbol,
	})
	if err != nil {
		log.Error(fmt.Sprintf("Unable to render page: %v", err))
	}
}

func (s *Server) launch(w http.ResponseWriter, r *http.Request) {
	if err := checkVersion(r); err != nil {
		writeResponse(w, nil, err)
		return
	}
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		writeResponse(w, nil, err)
		return
	}
	request := types.LaunchRequest{}
	err = json.Unmarshal(body, &request)
	if err != nil {
		writeResponse(w, nil, err)
		return
	}
	// The transaction outlives the client once it is sent.
	token, err := s.launchpad.Launch(context.WithoutCancel(r.Context()), request.Name, request.Symbol)
	if err != nil {
		writeResponse(w, nil, err)
		return
	}
	writeResponse(w, token, nil)
}

func (s *Server) launches(w http.ResponseWriter, r *http.Request) {
	if err := checkVersion(r); err != nil {
		writeResponse(w, nil, err)
		return
	}
	tokens, err := s.launchpad.Tokens()
	writeResponse(w, types.LaunchesResponse{Tokens: tokens}, err)
}

func (s *Server) state(w http.ResponseWriter, r *http.Request) {
	if err := checkVersion(r); err != nil {
		writeResponse(w, nil, err)
		return
	}
	state := s.launchpad.State()
	resp := types.StateResponse{
		Phase:           string(state.Phase),
		WalletConnected: state.WalletConnected,
	}
	if state.WalletConnected {
		resp.Account = state.Account.Hex()
	}
	writeResponse(w, resp, nil)
}

func (s *Server) subscribe(w http.ResponseWriter, r *http.Request) {
	if err := checkVersion(r); err != nil {
		writeResponse(w, nil, err)
		return
	}
	s.feed.serve(w, r)
}

func writeResponse(w http.ResponseWriter, result interface{}, err error) {
	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(getResponse(result, err))
	if err != nil {
		log.Error(fmt.Sprintf("Unable to write response: %v", err))
		return
	}
}

func getResponse(result interface{}, err error) types.Response {
	if err != nil {
		return getErrorResponse(err)
	}
	return types.Response{
		Success: true,
		Data:    result,
	}
}

func getErrorResponse(err error) types.Response {
	return getErrorMsgResponse(err.Error())
}

func getErrorMsgResponse(errMsg string) types.Response {
	return types.Response{
		Error: errMsg,
	}
}
