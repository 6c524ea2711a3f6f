// Package main provides localization for the gridshow CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Output":      "出力先",
		"Preset":      "プリセット",
		"Surface":     "描画面",
		"Scrolling":   "スクロール",
		"Interaction": "操作",
		"Debug":       "デバッグ",
		"Logging":     "ログ",

		// Root command
		"Render data grids to images":                                                "データグリッドを画像として描画",
		"gridshow paints CSV and JSON tables with a virtualized canvas grid engine.": "gridshowは仮想化キャンバスグリッドエンジンでCSVやJSONの表を描画します。",

		// Render command
		"Render a data file as grid frames": "データファイルをグリッドのフレームとして描画",

		// Columns command
		"List the columns detected in a data file": "データファイルから検出した列を一覧表示",
		"%d rows":                                  "%d 行",

		// Version command
		"Show version information": "バージョン情報を表示",
		"gridshow version %s":      "gridshow バージョン %s",

		// Output flags
		"Output image path (required)":                       "出力画像のパス（必須）",
		"Image format (png, jpeg)":                           "画像形式（png, jpeg）",
		"JPEG quality (1-100)":                               "JPEG品質（1-100）",
		"Resize HiDPI frames to CSS pixel size":              "HiDPIフレームをCSSピクセルサイズに縮小",
		"Output execution summary to file (Markdown format)": "実行サマリーをファイルに出力（Markdown形式）",

		// Preset flags
		"Config file (YAML or TOML)":                      "設定ファイル（YAMLまたはTOML）",
		"Density preset (compact, standard, comfortable)": "密度プリセット（compact, standard, comfortable）",

		// Surface flags
		"Viewport width in CSS pixels (default: 800)":    "ビューポートの幅（CSSピクセル、デフォルト: 800）",
		"Viewport height in CSS pixels (default: 600)":   "ビューポートの高さ（CSSピクセル、デフォルト: 600）",
		"Device pixel ratio (default: 1)":                "デバイスピクセル比（デフォルト: 1）",
		"Row number gutter width in pixels (0 = hidden)": "行番号欄の幅（ピクセル、0 = 非表示）",

		// Scrolling flags
		"Vertical scroll position of the first frame":      "最初のフレームの垂直スクロール位置",
		"Horizontal scroll position":                       "水平スクロール位置",
		"Number of frames to paint":                        "描画するフレーム数",
		"Vertical scroll distance between frames":          "フレーム間の垂直スクロール量",
		"Extra rows and columns drawn beyond the viewport": "ビューポート外に追加で描画する行と列の数",

		// Interaction flags
		"When resize widths apply (onChange, onEnd)": "リサイズ幅を適用するタイミング（onChange, onEnd）",

		// Debug flags
		"Enable debug output":        "デバッグ出力を有効化",
		"Directory for debug output": "デバッグ出力のディレクトリ",

		// Logging flags
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Suppress all log output":              "全てのログ出力を抑制",

		// Error messages
		"Data file argument is required": "データファイル引数が必要です",
		"Error: %s":                      "エラー: %s",

		// Summary content
		"Render Summary":     "描画サマリー",
		"Data":               "データ",
		"Item":               "項目",
		"Value":              "値",
		"Source":             "入力元",
		"Rows":               "行",
		"Columns":            "列",
		"Viewport":           "ビューポート",
		"Device Pixel Ratio": "デバイスピクセル比",
		"Content Size":       "コンテンツサイズ",
		"Header":             "見出し",
		"Width":              "幅",
		"Cell Type":          "セル種別",
		"default":            "既定",
		"Gestures":           "ジェスチャー",
		"Frames":             "フレーム",
		"Scroll":             "スクロール",
		"Cells Drawn":        "描画セル数",
		"Cells Skipped":      "スキップセル数",
		"Total Size":         "合計サイズ",
		"Elapsed":            "所要時間",
		"Generated by":       "生成:",
	})
}
