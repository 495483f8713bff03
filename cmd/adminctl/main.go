// Command adminctl is the terminal front-end of the Sağlık Hep admin
// panel: it drives the resource stores the way the web views do.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"saglikhep/internal/api"
	"saglikhep/internal/config"
	"saglikhep/internal/notify"
	"saglikhep/internal/session"
	"saglikhep/internal/store"
	"saglikhep/internal/util"
	"saglikhep/internal/validate"
	"saglikhep/pkg/domain"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

type app struct {
	client   *api.Client
	session  *session.Manager
	notifier notify.Notifier
}

func usage() {
	fmt.Fprintf(os.Stderr, `adminctl - Sağlık Hep yönetim aracı
Usage:
  adminctl [-config file] <cmd> [args]

Commands:
  version
  login          -email E -password P
  logout
  profile
  dashboard
  posts          [-page -limit -search -category -status -sort]
  post-show      -id ID
  post-approve   -id ID
  post-reject    -id ID
  post-unpublish -id ID
  post-delete    -id ID [-refetch=false]
  blogs          [-page -limit -search -category -published]
  blog-create    -title T -content C -category K [-image URL -published]
  blog-update    -id ID -title T -content C -category K [-image URL -published]
  blog-delete    -id ID
  comments       -post ID -type post|blog [-page -limit]
  comment-delete -id ID
  events         [-page -limit -search -category -status]
  event-create   -title T -desc D -location L -category K -date RFC3339 [-end RFC3339 -capacity N]
  event-approve  -id ID -action approve|reject [-reason R]
  event-delete   -id ID
  event-stats
  doctors        [-page -limit]
  doctor-approve -id ID
  doctor-reject  -id ID [-reason R]
  users          [-page -limit -search -role -status]
  user-ban       -id ID
  user-activate  -id ID
  user-delete    -id ID
  upload         FILE [FILE...]
  upload-rm      -name NAME
`)
	os.Exit(2)
}

func main() {
	cfgPath := flag.String("config", "", "config file path")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)
	args := flag.Args()[1:]

	if cmd == "version" {
		fmt.Printf("adminctl %s (%s)\n", version, buildDate)
		return
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fail(err)
	}
	if err := cfg.Validate(); err != nil {
		fail(err)
	}
	util.InitLogger(cfg.LogLevel)

	var snapshots session.Store
	switch cfg.SessionBackend {
	case "redis":
		snapshots = session.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.SessionTTLDuration())
	default:
		snapshots = session.NewFileStore(cfg.SessionPath)
	}
	slog.Debug("configured", "api", cfg.APIBaseURL, "sessionBackend", cfg.SessionBackend)

	var mgr *session.Manager
	client := api.NewClient(cfg.APIBaseURL, session.NewTokenStore(snapshots),
		api.WithSessionExpiredHook(func() {
			if mgr != nil {
				mgr.Expire()
			}
		}),
		api.WithUploadLimits(cfg.MaxUploadBytes, cfg.AllowedExtensions),
	)
	mgr = session.NewManager(client, snapshots)
	mgr.OnExpired(func() {
		fmt.Fprintln(os.Stderr, "oturum sonlandı; devam etmek için giriş yapın")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	a := &app{
		client:   client,
		session:  mgr,
		notifier: &notify.Terminal{Out: os.Stderr},
	}

	if cmd != "login" {
		_, _, _ = a.session.Restore(ctx)
	}
	a.dispatch(ctx, cmd, args)
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string) {
	switch cmd {
	case "login":
		a.cmdLogin(ctx, args)
	case "logout":
		a.cmdLogout(ctx)
	case "profile":
		a.cmdProfile(ctx)
	case "dashboard":
		a.cmdDashboard(ctx)
	case "posts":
		a.cmdPosts(ctx, args)
	case "post-show":
		a.cmdPostShow(ctx, args)
	case "post-approve", "post-reject", "post-unpublish":
		a.cmdPostModerate(ctx, cmd, args)
	case "post-delete":
		a.cmdPostDelete(ctx, args)
	case "blogs":
		a.cmdBlogs(ctx, args)
	case "blog-create", "blog-update":
		a.cmdBlogUpsert(ctx, cmd, args)
	case "blog-delete":
		a.cmdBlogDelete(ctx, args)
	case "comments":
		a.cmdComments(ctx, args)
	case "comment-delete":
		a.cmdCommentDelete(ctx, args)
	case "events":
		a.cmdEvents(ctx, args)
	case "event-create":
		a.cmdEventCreate(ctx, args)
	case "event-approve":
		a.cmdEventApprove(ctx, args)
	case "event-delete":
		a.cmdEventDelete(ctx, args)
	case "event-stats":
		a.cmdEventStats(ctx)
	case "doctors":
		a.cmdDoctors(ctx, args)
	case "doctor-approve":
		a.cmdDoctorApprove(ctx, args)
	case "doctor-reject":
		a.cmdDoctorReject(ctx, args)
	case "users":
		a.cmdUsers(ctx, args)
	case "user-ban", "user-activate":
		a.cmdUserStatus(ctx, cmd, args)
	case "user-delete":
		a.cmdUserDelete(ctx, args)
	case "upload":
		a.cmdUpload(ctx, args)
	case "upload-rm":
		a.cmdUploadRemove(ctx, args)
	default:
		usage()
	}
}

// ---- auth ----

func (a *app) cmdLogin(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "e-posta")
	password := fs.String("password", "", "parola")
	_ = fs.Parse(args)
	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "need -email and -password")
		os.Exit(1)
	}
	user, err := a.session.Login(ctx, *email, *password)
	if err != nil {
		a.fatal(err)
	}
	a.notifier.Success("giriş yapıldı: " + user.Email)
}

func (a *app) cmdLogout(ctx context.Context) {
	if err := a.session.Logout(ctx); err != nil {
		// local state is already gone; the server error is advisory
		fmt.Fprintf(os.Stderr, "sunucu çıkışı başarısız (yerel oturum temizlendi): %v\n", err)
	}
	a.notifier.Success("çıkış yapıldı")
}

func (a *app) cmdProfile(ctx context.Context) {
	user, err := a.client.Profile(ctx)
	if err != nil {
		a.fatal(err)
	}
	printJSON(domain.NormalizeUser(user))
}

// ---- dashboard ----

func (a *app) cmdDashboard(ctx context.Context) {
	dash := store.NewDashboard(a.client)
	if err := dash.Refresh(ctx); err != nil {
		a.fatal(err)
	}
	printJSON(dash.State())
}

// ---- posts ----

func (a *app) cmdPosts(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("posts", flag.ExitOnError)
	fs.Int("page", 1, "sayfa")
	fs.Int("limit", 20, "sayfa boyutu")
	fs.String("search", "", "arama")
	fs.String("category", "", "kategori")
	fs.String("status", "", "durum")
	fs.String("sort", "", "sıralama")
	_ = fs.Parse(args)

	posts := store.NewPosts(a.client)
	if err := posts.Fetch(ctx, filtersFromFlags(fs)); err != nil {
		a.fatal(err)
	}
	printJSON(posts.State())
}

func (a *app) cmdPostShow(ctx context.Context, args []string) {
	id := requireID("post-show", args)
	post, err := a.client.GetPost(ctx, id)
	if err != nil {
		a.fatal(err)
	}
	printJSON(domain.NormalizePost(post))
}

func (a *app) cmdPostModerate(ctx context.Context, cmd string, args []string) {
	id := requireID(cmd, args)
	posts := store.NewPosts(a.client)
	var (
		post domain.Post
		err  error
	)
	switch cmd {
	case "post-approve":
		post, err = posts.Approve(ctx, id)
	case "post-reject":
		post, err = posts.Reject(ctx, id)
	case "post-unpublish":
		post, err = posts.Unpublish(ctx, id)
	}
	if err != nil {
		a.fatal(err)
	}
	printJSON(post)
}

func (a *app) cmdPostDelete(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("post-delete", flag.ExitOnError)
	id := fs.String("id", "", "post id")
	refetch := fs.Bool("refetch", true, "listeyi yeniden yükle")
	_ = fs.Parse(args)
	if *id == "" {
		fmt.Fprintln(os.Stderr, "need -id")
		os.Exit(1)
	}
	posts := store.NewPosts(a.client)
	if err := posts.Delete(ctx, *id, *refetch); err != nil {
		a.fatal(err)
	}
	a.notifier.Success("gönderi silindi")
}

// ---- blogs ----

func (a *app) cmdBlogs(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("blogs", flag.ExitOnError)
	fs.Int("page", 1, "sayfa")
	fs.Int("limit", 20, "sayfa boyutu")
	fs.String("search", "", "arama")
	fs.String("category", "", "kategori")
	fs.Bool("published", false, "yalnızca yayında")
	_ = fs.Parse(args)

	blogs := store.NewBlogs(a.client)
	if err := blogs.Fetch(ctx, filtersFromFlags(fs)); err != nil {
		a.fatal(err)
	}
	printJSON(blogs.State())
}

func (a *app) cmdBlogUpsert(ctx context.Context, cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	id := fs.String("id", "", "blog id")
	title := fs.String("title", "", "başlık")
	content := fs.String("content", "", "içerik")
	category := fs.String("category", "", "kategori")
	image := fs.String("image", "", "görsel URL")
	published := fs.Bool("published", false, "yayında")
	_ = fs.Parse(args)
	if *title == "" || *content == "" || *category == "" {
		fmt.Fprintln(os.Stderr, "need -title, -content and -category")
		os.Exit(1)
	}
	in := api.BlogInput{
		Title:     *title,
		Content:   *content,
		Category:  *category,
		ImageURL:  *image,
		Published: *published,
	}
	blogs := store.NewBlogs(a.client)
	var (
		blog domain.Blog
		err  error
	)
	if cmd == "blog-update" {
		if *id == "" {
			fmt.Fprintln(os.Stderr, "need -id")
			os.Exit(1)
		}
		blog, err = blogs.Update(ctx, *id, in)
	} else {
		blog, err = blogs.Create(ctx, in)
	}
	if err != nil {
		a.fatal(err)
	}
	printJSON(blog)
}

func (a *app) cmdBlogDelete(ctx context.Context, args []string) {
	id := requireID("blog-delete", args)
	blogs := store.NewBlogs(a.client)
	if err := blogs.Delete(ctx, id, false); err != nil {
		a.fatal(err)
	}
	a.notifier.Success("blog silindi")
}

// ---- comments ----

func (a *app) cmdComments(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("comments", flag.ExitOnError)
	postID := fs.String("post", "", "üst kayıt id")
	postType := fs.String("type", "post", "post|blog")
	fs.Int("page", 1, "sayfa")
	fs.Int("limit", 20, "sayfa boyutu")
	_ = fs.Parse(args)
	if *postID == "" {
		fmt.Fprintln(os.Stderr, "need -post")
		os.Exit(1)
	}
	comments := store.NewComments(a.client)
	f := filtersFromFlags(fs, "post", "type")
	if err := comments.FetchFor(ctx, *postID, domain.PostType(*postType), f); err != nil {
		a.fatal(err)
	}
	printJSON(comments.State())
}

func (a *app) cmdCommentDelete(ctx context.Context, args []string) {
	id := requireID("comment-delete", args)
	comments := store.NewComments(a.client)
	if err := comments.Delete(ctx, id, false); err != nil {
		a.fatal(err)
	}
	a.notifier.Success("yorum silindi")
}

// ---- events ----

func (a *app) cmdEvents(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	fs.Int("page", 1, "sayfa")
	fs.Int("limit", 20, "sayfa boyutu")
	fs.String("search", "", "arama")
	fs.String("category", "", "kategori")
	fs.String("status", "", "durum")
	_ = fs.Parse(args)

	events := store.NewEvents(a.client)
	if err := events.Fetch(ctx, filtersFromFlags(fs)); err != nil {
		a.fatal(err)
	}
	printJSON(events.State())
}

func (a *app) cmdEventCreate(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("event-create", flag.ExitOnError)
	title := fs.String("title", "", "başlık")
	desc := fs.String("desc", "", "açıklama")
	location := fs.String("location", "", "yer")
	category := fs.String("category", "", "kategori")
	date := fs.String("date", "", "başlangıç (RFC3339)")
	end := fs.String("end", "", "bitiş (RFC3339)")
	capacity := fs.Int("capacity", 0, "kapasite")
	_ = fs.Parse(args)

	start, err := time.Parse(time.RFC3339, *date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "geçersiz -date: %v\n", err)
		os.Exit(1)
	}
	var endDate *time.Time
	if *end != "" {
		parsed, err := time.Parse(time.RFC3339, *end)
		if err != nil {
			fmt.Fprintf(os.Stderr, "geçersiz -end: %v\n", err)
			os.Exit(1)
		}
		endDate = &parsed
	}

	form := validate.EventForm{
		Title:       *title,
		Description: *desc,
		Location:    *location,
		Category:    *category,
		Date:        start,
		EndDate:     endDate,
		Capacity:    *capacity,
	}
	if fieldErrs := validate.Event(form); fieldErrs != nil {
		notify.Surface(a.notifier, fieldErrs)
		os.Exit(1)
	}

	events := store.NewEvents(a.client)
	event, err := events.Create(ctx, api.EventInput{
		Title:       form.Title,
		Description: form.Description,
		Location:    form.Location,
		Category:    form.Category,
		Date:        form.Date,
		EndDate:     form.EndDate,
		Capacity:    form.Capacity,
	})
	if err != nil {
		a.fatal(err)
	}
	printJSON(event)
}

func (a *app) cmdEventApprove(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("event-approve", flag.ExitOnError)
	id := fs.String("id", "", "etkinlik id")
	action := fs.String("action", "", "approve|reject")
	reason := fs.String("reason", "", "gerekçe")
	_ = fs.Parse(args)
	if *id == "" || (*action != "approve" && *action != "reject") {
		fmt.Fprintln(os.Stderr, "need -id and -action approve|reject")
		os.Exit(1)
	}
	events := store.NewEvents(a.client)
	event, err := events.Approve(ctx, *id, api.EventApproval{Action: *action, Reason: *reason})
	if err != nil {
		a.fatal(err)
	}
	printJSON(event)
}

func (a *app) cmdEventDelete(ctx context.Context, args []string) {
	id := requireID("event-delete", args)
	events := store.NewEvents(a.client)
	if err := events.Delete(ctx, id, false); err != nil {
		a.fatal(err)
	}
	a.notifier.Success("etkinlik silindi")
}

func (a *app) cmdEventStats(ctx context.Context) {
	stats, err := a.client.EventStats(ctx)
	if err != nil {
		a.fatal(err)
	}
	printJSON(stats)
}

// ---- doctors ----

func (a *app) cmdDoctors(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("doctors", flag.ExitOnError)
	fs.Int("page", 1, "sayfa")
	fs.Int("limit", 20, "sayfa boyutu")
	_ = fs.Parse(args)

	doctors := store.NewDoctors(a.client)
	if err := doctors.Fetch(ctx, filtersFromFlags(fs)); err != nil {
		a.fatal(err)
	}
	printJSON(doctors.State())
}

func (a *app) cmdDoctorApprove(ctx context.Context, args []string) {
	id := requireID("doctor-approve", args)
	doctors := store.NewDoctors(a.client)
	if err := doctors.Approve(ctx, id); err != nil {
		a.fatal(err)
	}
	a.notifier.Success("uzman başvurusu onaylandı")
}

func (a *app) cmdDoctorReject(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("doctor-reject", flag.ExitOnError)
	id := fs.String("id", "", "başvuru id")
	reason := fs.String("reason", "", "gerekçe")
	_ = fs.Parse(args)
	if *id == "" {
		fmt.Fprintln(os.Stderr, "need -id")
		os.Exit(1)
	}
	doctors := store.NewDoctors(a.client)
	if err := doctors.Reject(ctx, *id, *reason); err != nil {
		a.fatal(err)
	}
	a.notifier.Success("uzman başvurusu reddedildi")
}

// ---- users ----

func (a *app) cmdUsers(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("users", flag.ExitOnError)
	fs.Int("page", 1, "sayfa")
	fs.Int("limit", 20, "sayfa boyutu")
	fs.String("search", "", "arama")
	fs.String("role", "", "rol")
	fs.String("status", "", "durum")
	_ = fs.Parse(args)

	users := store.NewUsers(a.client)
	if err := users.Fetch(ctx, filtersFromFlags(fs)); err != nil {
		a.fatal(err)
	}
	printJSON(users.State())
}

func (a *app) cmdUserStatus(ctx context.Context, cmd string, args []string) {
	id := requireID(cmd, args)
	status := domain.UserBanned
	if cmd == "user-activate" {
		status = domain.UserActive
	}
	users := store.NewUsers(a.client)
	user, err := users.SetStatus(ctx, id, status)
	if err != nil {
		a.fatal(err)
	}
	printJSON(user)
}

func (a *app) cmdUserDelete(ctx context.Context, args []string) {
	id := requireID("user-delete", args)
	users := store.NewUsers(a.client)
	if err := users.Delete(ctx, id, false); err != nil {
		a.fatal(err)
	}
	a.notifier.Success("kullanıcı silindi")
}

// ---- uploads ----

func (a *app) cmdUpload(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "need at least one file")
		os.Exit(1)
	}
	files := make([]api.UploadFile, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			a.fatal(err)
		}
		files = append(files, api.UploadFile{Name: path, Data: data})
	}
	if len(files) == 1 {
		result, err := a.client.UploadSingle(ctx, files[0])
		if err != nil {
			a.fatal(err)
		}
		printJSON(result)
		return
	}
	results, err := a.client.UploadMultiple(ctx, files)
	if err != nil {
		a.fatal(err)
	}
	printJSON(results)
}

func (a *app) cmdUploadRemove(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("upload-rm", flag.ExitOnError)
	name := fs.String("name", "", "dosya adı")
	_ = fs.Parse(args)
	if *name == "" {
		fmt.Fprintln(os.Stderr, "need -name")
		os.Exit(1)
	}
	if err := a.client.DeleteUpload(ctx, *name); err != nil {
		a.fatal(err)
	}
	a.notifier.Success("dosya silindi")
}

// ---- helpers ----

// filtersFromFlags turns only the flags the operator actually set into
// filter entries, so an untouched flag stays "unset" rather than
// becoming its zero value; -published=false stays a real filter.
func filtersFromFlags(fs *flag.FlagSet, exclude ...string) domain.Filters {
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}
	f := domain.Filters{}
	fs.Visit(func(fl *flag.Flag) {
		if skip[fl.Name] {
			return
		}
		if getter, ok := fl.Value.(flag.Getter); ok {
			f[fl.Name] = getter.Get()
		}
	})
	return f
}

func requireID(cmd string, args []string) string {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	id := fs.String("id", "", "kayıt id")
	_ = fs.Parse(args)
	if *id == "" {
		fmt.Fprintln(os.Stderr, "need -id")
		os.Exit(1)
	}
	return *id
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func (a *app) fatal(err error) {
	notify.Surface(a.notifier, err)
	os.Exit(1)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
