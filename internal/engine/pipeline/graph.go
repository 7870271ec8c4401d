package pipeline

import (
	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/engine/dispatcher"
)

// Task names.
const (
	TaskHTML    = "html"
	TaskStyles  = "styles"
	TaskScripts = "scripts"
	TaskCopy    = "copy"
	TaskSprite  = "sprite"
	TaskImages  = "images"
	TaskWebP    = "webp"
	TaskImgProc = "imgproc"
	TaskClean   = "clean"
	TaskBuild   = "build"
	TaskDefault = "default"
)

// Group names of composites that only exist to run their children together.
const (
	GroupAssets = "assets"
	GroupLive   = "live"
)

// Decorator wraps a task, for example to trace it.
type Decorator func(domain.Task) domain.Task

func identity(t domain.Task) domain.Task { return t }

// Registry returns every transform task plus the build and imgproc composites.
// decorate is applied to each task, composites included.
func (p *Pipeline) Registry(decorate Decorator) (*domain.Registry, error) {
	if decorate == nil {
		decorate = identity
	}

	html := decorate(domain.NewFunc(TaskHTML, p.HTML))
	styles := decorate(domain.NewFunc(TaskStyles, p.Styles))
	scripts := decorate(domain.NewFunc(TaskScripts, p.Scripts))
	cp := decorate(domain.NewFunc(TaskCopy, p.Copy))
	sprite := decorate(domain.NewFunc(TaskSprite, p.Sprite))
	images := decorate(domain.NewFunc(TaskImages, p.Images))
	webp := decorate(domain.NewFunc(TaskWebP, p.WebP))
	clean := decorate(domain.NewFunc(TaskClean, p.Clean))

	build := decorate(domain.Series(TaskBuild,
		clean,
		sprite,
		decorate(domain.Parallel(GroupAssets, html, styles, scripts, cp)),
	))
	imgproc := decorate(domain.Parallel(TaskImgProc, images, webp))

	reg := domain.NewRegistry()
	for _, entry := range []struct {
		task        domain.Task
		description string
	}{
		{html, "Expand includes and minify HTML pages"},
		{styles, "Compile, prefix and minify stylesheets"},
		{scripts, "Transpile and minify scripts"},
		{cp, "Copy fonts, images and icons"},
		{sprite, "Build the SVG icon sprite"},
		{images, "Optimize built images in place"},
		{webp, "Convert built images to WebP"},
		{imgproc, "Optimize images and convert them to WebP"},
		{clean, "Remove the build directory"},
		{build, "Clean, then build every asset"},
	} {
		if err := reg.Add(entry.task, entry.description); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Bindings returns the watch bindings over the tasks registered in reg.
func (p *Pipeline) Bindings(reg *domain.Registry, decorate Decorator) ([]dispatcher.Binding, error) {
	if decorate == nil {
		decorate = identity
	}

	tasks := make(map[string]domain.Task)
	for _, name := range []string{TaskHTML, TaskStyles, TaskScripts, TaskCopy, TaskSprite} {
		task, err := reg.Lookup(name)
		if err != nil {
			return nil, err
		}
		tasks[name] = task
	}

	l := p.layout
	return []dispatcher.Binding{
		{Patterns: []string{l.InSource("*.html")}, Task: tasks[TaskHTML]},
		{Patterns: []string{l.InSource("styles/**/*.scss")}, Task: tasks[TaskStyles]},
		{Patterns: []string{l.InSource("scripts/**/*.js")}, Task: tasks[TaskScripts]},
		{Patterns: []string{l.InSource("fonts/**"), l.InSource("images/**")}, Task: tasks[TaskCopy]},
		{
			Patterns: []string{l.InSource("images/{icon-*,logo-*}.svg")},
			Task:     decorate(domain.Series("sprite+html", tasks[TaskSprite], tasks[TaskHTML])),
		},
	}, nil
}
