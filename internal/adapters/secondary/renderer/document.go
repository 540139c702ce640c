package renderer

import (
	"html/template"

	"github.com/fallinov/prez-app/internal/adapters/secondary/palette"
	"github.com/fallinov/prez-app/internal/domain/entities"
)

// documentData feeds the document template. Colours are typed as CSS because
// every one of them is a validated #rrggbb value.
type documentData struct {
	Lang           string
	Title          string
	Labels         labels
	Preview        bool
	Slides         template.HTML
	Dots           []int
	Background     template.CSS
	Text           template.CSS
	Accent         template.CSS
	AccentLight    template.CSS
	AccentDark     template.CSS
	AccentContrast template.CSS
	TextHighlight  template.CSS
	HighlightCSS   template.CSS
	HasNotes       bool
}

func newDocumentData(title, lang string, l labels, p entities.Palette, override *entities.PaletteOverride) documentData {
	d := documentData{
		Lang:           lang,
		Title:          title,
		Labels:         l,
		Background:     template.CSS(p.Background),
		Text:           template.CSS(p.Text),
		Accent:         template.CSS(p.Accent),
		AccentLight:    template.CSS(p.AccentLight),
		AccentDark:     template.CSS(p.AccentDark),
		AccentContrast: template.CSS(palette.ContrastOn(p.Accent)),
		TextHighlight:  template.CSS(p.AccentLight),
	}

	if override != nil {
		d.Accent = template.CSS(override.Accent)
		d.AccentLight = template.CSS(override.AccentLight)
		d.AccentDark = template.CSS(override.AccentDark)
		d.AccentContrast = template.CSS(override.AccentContrast)
		d.TextHighlight = template.CSS(override.TextHighlight)
	}

	return d
}

var documentTemplate = template.Must(template.New("document").Parse(documentHTML))

const documentHTML = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <script src="https://cdn.tailwindcss.com"></script>
    <link rel="preconnect" href="https://fonts.googleapis.com">
    <link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
    <link href="https://fonts.googleapis.com/css2?family=Inter:wght@400;500;600;700;800&family=JetBrains+Mono:wght@400;500&display=swap" rel="stylesheet">
    <script src="https://unpkg.com/lucide@latest"></script>
    <script>
        tailwind.config = {
            theme: {
                extend: {
                    fontFamily: {
                        sans: ['Inter', 'sans-serif'],
                        mono: ['JetBrains Mono', 'monospace'],
                    },
                    colors: {
                        accent: '{{.Accent}}',
                        accentLight: '{{.AccentLight}}',
                        accentDark: '{{.AccentDark}}',
                    }
                }
            }
        }
    </script>
    <style>
        :root {
            --accent: {{.Accent}};
            --accent-contrast: {{.AccentContrast}};
            --text-highlight: {{.TextHighlight}};
        }
        html { scroll-behavior: smooth; }
        body {
            background-color: {{.Background}};
            color: {{.Text}};
        }
        .slide {
            position: relative;
            min-height: 100vh;
            height: 100vh;
            max-height: 100vh;
            scroll-snap-align: start;
            overflow: hidden;
        }
        .gradient-accent { background: linear-gradient(135deg, {{.Accent}} 0%, {{.AccentDark}} 100%); color: var(--accent-contrast); }

        .hero-accent {
            color: var(--text-highlight);
            text-shadow: 0 2px 10px rgba(0,0,0,0.5), 0 0 40px rgba(255,255,255,0.3);
            filter: brightness(1.3) contrast(1.1);
        }

        .code-block {
            background: #1e1e1e;
            border-radius: 0.75rem;
            padding: 1rem 1.25rem;
            font-family: 'JetBrains Mono', monospace;
            font-size: 0.875rem;
            overflow-x: auto;
        }
        .code-block .tag { color: #569cd6; }
        .code-block .attr { color: #9cdcfe; }
        .code-block .value { color: #ce9178; }
        {{.HighlightCSS}}

        @keyframes fadeInUp {
            from { opacity: 0; transform: translateY(20px); }
            to { opacity: 1; transform: translateY(0); }
        }
        @keyframes fadeInLeft {
            from { opacity: 0; transform: translateX(-20px); }
            to { opacity: 1; transform: translateX(0); }
        }
        @keyframes pulse-slow {
            0%, 100% { opacity: 1; }
            50% { opacity: 0.6; }
        }
        .animate-fade-in-up { animation: fadeInUp 0.5s ease-out forwards; }
        .animate-fade-in-left { animation: fadeInLeft 0.5s ease-out forwards; }
        .animate-pulse-slow { animation: pulse-slow 2s ease-in-out infinite; }

        .delay-100 { animation-delay: 0.1s; opacity: 0; }
        .delay-200 { animation-delay: 0.2s; opacity: 0; }
        .delay-300 { animation-delay: 0.3s; opacity: 0; }

        .nav-dot { transition: all 0.3s ease; }
        .nav-dot.active { transform: scale(1.3); background-color: {{.Accent}} !important; }

        .high-contrast body,
        .high-contrast .slide,
        .high-contrast .bg-slate-900,
        .high-contrast .bg-slate-800 {
            background-color: #000000 !important;
        }
        .high-contrast .text-slate-300,
        .high-contrast .text-slate-400,
        .high-contrast .text-slate-500,
        .high-contrast .text-gray-300,
        .high-contrast .text-gray-400 {
            color: #e2e8f0 !important;
        }
        .high-contrast .text-white\/80,
        .high-contrast .text-white\/90 {
            color: #ffffff !important;
        }
        .high-contrast .border-slate-700,
        .high-contrast .border-slate-600 {
            border-color: rgba(255,255,255,0.3) !important;
        }
        .high-contrast .bg-slate-800\/50,
        .high-contrast .bg-slate-700\/50,
        .high-contrast .bg-slate-900\/50 {
            background-color: rgba(255,255,255,0.1) !important;
        }
        .high-contrast .nav-dot:not(.active) {
            background-color: rgba(255,255,255,0.5) !important;
        }

        .contrast-indicator {
            position: fixed;
            bottom: 1.5rem;
            left: 1.5rem;
            padding: 0.5rem 1rem;
            background: {{.Accent}};
            color: var(--accent-contrast);
            font-size: 0.875rem;
            font-weight: 600;
            border-radius: 9999px;
            z-index: 9999;
            display: none;
            align-items: center;
            gap: 0.5rem;
        }
        .high-contrast .contrast-indicator { display: flex; }

        .speaker-notes { display: none; }
        .show-notes .speaker-notes {
            display: block;
            position: absolute;
            left: 1.5rem;
            right: 1.5rem;
            bottom: 1.5rem;
            max-height: 30vh;
            overflow-y: auto;
            padding: 1rem 1.25rem;
            background: rgba(15,23,42,0.92);
            border: 1px solid rgba(255,255,255,0.15);
            border-radius: 0.75rem;
            color: #e2e8f0;
            font-size: 0.95rem;
            z-index: 40;
        }
    </style>
</head>
<body class="font-sans overflow-x-hidden">
{{if not .Preview}}
    <nav class="fixed right-6 top-1/2 -translate-y-1/2 z-50 hidden md:flex flex-col gap-3">
        {{- range .Dots}}
        <a href="#slide-{{.}}" class="nav-dot w-4 h-4 rounded-full bg-white/40 hover:bg-accent transition-all" title="{{$.Labels.SlideTitle}} {{.}}"></a>
        {{- end}}
    </nav>
{{end}}
    {{.Slides}}
{{if not .Preview}}
    <footer class="bg-slate-900 border-t border-slate-800 py-8">
        <div class="max-w-6xl mx-auto px-6 text-center">
            <p class="text-slate-400">{{.Title}}</p>
            <p class="text-slate-500 text-sm mt-2">
                <kbd class="px-2 py-1 bg-slate-700 rounded text-slate-300 font-mono text-xs">C</kbd> {{.Labels.ContrastHint}}
                {{- if .HasNotes}}
                &middot; <kbd class="px-2 py-1 bg-slate-700 rounded text-slate-300 font-mono text-xs">N</kbd> {{.Labels.NotesHint}}
                {{- end}}
            </p>
        </div>
    </footer>
{{end}}
    <div class="contrast-indicator">{{.Labels.ContrastBadge}}</div>

    <script>
        const sections = document.querySelectorAll('.slide');
        const navDots = document.querySelectorAll('.nav-dot');
        let currentSlide = 0;

        function updateNavDots(index) {
            navDots.forEach((dot, i) => {
                dot.classList.remove('active');
                if (i === index) dot.classList.add('active');
            });
        }

        function goToSlide(index) {
            if (index >= 0 && index < sections.length) {
                currentSlide = index;
                sections[index].scrollIntoView({ behavior: 'smooth' });
                updateNavDots(index);
            }
        }

        function nextSlide() { if (currentSlide < sections.length - 1) goToSlide(currentSlide + 1); }
        function prevSlide() { if (currentSlide > 0) goToSlide(currentSlide - 1); }

        const observer = new IntersectionObserver((entries) => {
            entries.forEach(entry => {
                if (entry.isIntersecting) {
                    const index = Array.from(sections).indexOf(entry.target);
                    if (index !== -1) {
                        currentSlide = index;
                        updateNavDots(index);
                    }
                }
            });
        }, { rootMargin: '-40% 0px -40% 0px', threshold: 0 });

        sections.forEach(section => observer.observe(section));

        document.addEventListener('keydown', (e) => {
            if (e.key === 'ArrowDown' || e.key === 'ArrowRight' || e.key === ' ' || e.key === 'Enter') {
                e.preventDefault();
                nextSlide();
            } else if (e.key === 'ArrowUp' || e.key === 'ArrowLeft') {
                e.preventDefault();
                prevSlide();
            } else if (e.key === 'Home') {
                e.preventDefault();
                goToSlide(0);
            } else if (e.key === 'End') {
                e.preventDefault();
                goToSlide(sections.length - 1);
            } else if (e.key === 'c' || e.key === 'C') {
                toggleHighContrast();
            } else if (e.key === 'n' || e.key === 'N') {
                document.documentElement.classList.toggle('show-notes');
            }
        });

        navDots.forEach((dot, index) => {
            dot.addEventListener('click', (e) => {
                e.preventDefault();
                goToSlide(index);
            });
        });

        function initHighContrastMode() {
            if (localStorage.getItem('highContrast') === 'true') {
                document.documentElement.classList.add('high-contrast');
            }
        }

        function toggleHighContrast() {
            const isActive = document.documentElement.classList.toggle('high-contrast');
            localStorage.setItem('highContrast', isActive.toString());
        }

        initHighContrastMode();

        if (typeof lucide !== 'undefined') {
            lucide.createIcons();
        }
    </script>
</body>
</html>
`
