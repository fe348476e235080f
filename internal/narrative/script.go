package narrative

// DefaultInitialTask is the task label shown before collection picks one.
const DefaultInitialTask = "Initializing spider..."

// DefaultTaskLogFormat formats the log line emitted for a task change.
const DefaultTaskLogFormat = "[WORK] %s"

// DefaultLogWindow is how many log lines survive a collection append.
const DefaultLogWindow = 16

var defaultBootScript = []string{
	"[INIT] Starting T-Gen Scraper v4.5.2...",
	"[INIT] Loading Python 3.11 environment...",
	"[ OK ] Telethon library loaded.",
	"[ OK ] PySocks loaded.",
	"[INFO] Reading config.ini...",
	"[INFO] Loading proxies from proxies.txt...",
	"[ OK ] 4,210 Proxies valid.",
	"[NET] Connecting to Telegram API (Layer 162)...",
	"[NET] Handshake successful. DC: 4 (Europe).",
	"[INFO] Bypassing flood wait protections...",
	"[ OK ] Session #1 (USA) - Active",
	"[ OK ] Session #2 (India) - Active",
	"[ OK ] Session #3 (Russia) - Active",
	"[INFO] Target Mode: GLOBAL_SCRAPE",
	`[INFO] Keywords: "crypto", "marketing", "investing"`,
	"[WARN] Anti-Bot heuristics detected.",
	"[INFO] Enabling random sleep intervals.",
	"[TASK] Starting Group Link Collector Service...",
}

var defaultTasks = []string{
	"Scraping specific keywords...",
	"Parsing HTML content...",
	"Validating invite links...",
	"Filtering dead groups...",
	"Extracting user IDs...",
	"Bypassing privacy settings...",
	"Saving to database...",
	"Rotating user agents...",
	"Analyzing member activity...",
}

// DefaultBootScript returns a copy of the built-in boot script.
func DefaultBootScript() []string {
	return append([]string(nil), defaultBootScript...)
}

// DefaultTasks returns a copy of the built-in collection task labels.
func DefaultTasks() []string {
	return append([]string(nil), defaultTasks...)
}
