package main

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/garciat/roto/check"
	"github.com/garciat/roto/compile"
	"github.com/garciat/roto/ir"
)

//go:embed resources
var resources embed.FS

var (
	indexTemplate  = template.Must(template.ParseFS(resources, "resources/index.html"))
	defaultContent = mustReadResource("resources/default.json")

	// The checker's debug switches are global.
	compilerMux sync.Mutex
)

const maxFormSize = 500 * 1024

func mustReadResource(name string) string {
	data, err := resources.ReadFile(name)
	if err != nil {
		log.Fatal(err)
	}
	return string(data)
}

func main() {
	log.SetFlags(0)

	addr := fmt.Sprintf("0.0.0.0:%s", getPort())

	log.Println("Listening on " + addr)
	log.Fatal(http.ListenAndServe(addr, logRequest(newMux())))
}

func newMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", indexHandler)
	mux.HandleFunc("POST /resolve", resolveHandler)
	return mux
}

func getPort() string {
	port, ok := os.LookupEnv("PORT")
	if !ok {
		return "8080"
	}
	return port
}

func indexHandler(w http.ResponseWriter, r *http.Request) {
	type Page struct {
		DefaultContent string
	}

	err := indexTemplate.Execute(w, Page{DefaultContent: defaultContent})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func resolveHandler(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(maxFormSize)
	if err != nil && err != http.ErrNotMultipart {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	decls := r.FormValue("decls")
	if strings.TrimSpace(decls) == "" {
		http.Error(w, "missing decls", http.StatusBadRequest)
		return
	}
	roots := splitRoots(r.FormValue("roots"))
	trace := r.FormValue("trace") != ""

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	compilerMux.Lock()
	check.DebugChecker = trace
	check.DebugWriter = w
	table, err := resolve(decls, roots)
	check.DebugChecker = false
	check.DebugWriter = os.Stderr
	compilerMux.Unlock()

	if err != nil {
		fmt.Fprintf(w, "ERROR: %v\n", err)
		return
	}
	if err := ir.Fprint(w, table); err != nil {
		log.Printf("writing response: %v", err)
	}
}

func resolve(decls string, roots []string) (*ir.Table, error) {
	unit := compile.NewCompilationUnit()
	if err := unit.AddSource("playground.json", []byte(decls)); err != nil {
		return nil, err
	}
	if len(roots) > 0 {
		return unit.CompileRoots(roots)
	}
	return unit.CompileDefault()
}

func splitRoots(value string) []string {
	var roots []string
	for _, root := range strings.Split(value, ",") {
		if root = strings.TrimSpace(root); root != "" {
			roots = append(roots, root)
		}
	}
	return roots
}

func logRequest(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s %s\n", r.RemoteAddr, r.Method, r.URL)
		handler.ServeHTTP(w, r)
	})
}
