package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Rendering %s (%s preset)...":          "%s を描画中 (%s プリセット)...",
		"Starting pipeline":                    "パイプラインを開始します",
		"Loading %s":                           "%s を読み込み中",
		"Loaded %d rows, %d columns":           "%d 行, %d 列を読み込みました",
		"Painting %d frames at %dx%d (DPR %g)": "%d フレームを %dx%d (DPR %g) で描画中",
		"Applied gesture: %s":                  "ジェスチャーを適用: %s",
		"Output saved to %s":                   "出力を %s に保存しました",
		"Summary saved to %s":                  "サマリーを %s に保存しました",
		"Pipeline completed successfully":      "パイプラインが正常に完了しました",
		"Interrupted, shutting down...":        "中断されました。シャットダウン中...",

		// Orchestration errors
		"Failed to load data: %s":         "データの読み込みに失敗しました: %s",
		"Failed to paint frames: %s":      "フレームの描画に失敗しました: %s",
		"Failed to encode frames: %s":     "フレームのエンコードに失敗しました: %s",
		"Failed to write output: %s":      "出力の書き込みに失敗しました: %s",
		"Failed to write summary: %s":     "サマリーの書き込みに失敗しました: %s",
		"Failed to save debug output: %s": "デバッグ出力の保存に失敗しました: %s",

		// Load stage
		"Loaded %d rows and %d columns from %s": "%[3]s から %[1]d 行, %[2]d 列を読み込みました",
		"Unknown column %q in order, ignored":   "並び順の不明な列 %q を無視しました",

		// Paint stage
		"Skipping %s gesture on %q: %v": "列 %[2]q への %[1]s ジェスチャーをスキップします: %[3]v",

		// Draw pipeline
		"Frame rendered: rows %d-%d, columns %d-%d, %d cells drawn, %d skipped": "フレーム描画完了: 行 %d-%d, 列 %d-%d, %d セル描画, %d スキップ",
		"Unknown cell type %q, falling back to text":                            "不明なセル種別 %q のためテキストとして描画します",

		// Interaction
		"Resize started: column %s at %.0fpx":     "リサイズ開始: 列 %s (%.0fpx)",
		"Resize committed: column %s to %.0fpx":   "リサイズ確定: 列 %s を %.0fpx に変更",
		"Column %s resized to %.0fpx":             "列 %s を %.0fpx にリサイズしました",
		"Drag started: column %s from %d":         "ドラッグ開始: 列 %s (位置 %d)",
		"Drag committed: column %s from %d to %d": "ドラッグ確定: 列 %s を %d から %d へ移動",
		"Drag dropped: column %s not in order":    "ドロップ無効: 列 %s が並び順にありません",
		"Columns reordered: %v":                   "列を並べ替えました: %v",

		// Encode stage
		"Encoding %d frames with %d workers": "%d フレームを %d ワーカーでエンコード中",
		"Failed to save debug frame %d: %v":  "デバッグフレーム %d の保存に失敗しました: %v",
	})
}
