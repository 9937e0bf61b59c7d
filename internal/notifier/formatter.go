package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/qq173681019/JericoNewStockSystem/internal/model"
)

// AlertKind classifies a watchlist trigger.
type AlertKind string

const (
	AlertStopLoss    AlertKind = "stop_loss"
	AlertStopProfit  AlertKind = "stop_profit"
	AlertTargetPrice AlertKind = "target_price"
)

// FormatWatchAlert formats a price-level trigger on a watched stock.
func FormatWatchAlert(kind AlertKind, item *model.WatchlistItem, quote *model.Quote) string {
	var b strings.Builder

	switch kind {
	case AlertStopLoss:
		b.WriteString("🛑 <b>止损提醒</b>\n\n")
		b.WriteString(fmt.Sprintf("%s (%s) 已跌破止损价 %.2f\n", item.Name, item.Code, item.StopLoss))
	case AlertStopProfit:
		b.WriteString("💰 <b>止盈提醒</b>\n\n")
		b.WriteString(fmt.Sprintf("%s (%s) 已突破止盈价 %.2f\n", item.Name, item.Code, item.StopProfit))
	case AlertTargetPrice:
		b.WriteString("🎯 <b>目标价提醒</b>\n\n")
		b.WriteString(fmt.Sprintf("%s (%s) 已达到目标价 %.2f\n", item.Name, item.Code, item.TargetPrice))
	}

	b.WriteString(fmt.Sprintf("当前价格: %.2f (%+.2f%%)\n", quote.Price, quote.ChangePct))
	b.WriteString(fmt.Sprintf("数据来源: %s | %s\n", quote.Source, quote.Timestamp.Format("2006-01-02 15:04")))
	if item.Notes != "" {
		b.WriteString(fmt.Sprintf("备注: %s\n", item.Notes))
	}
	return b.String()
}

// FormatWatchlistSummary formats the latest quotes for every watched stock.
func FormatWatchlistSummary(items []model.WatchlistItem, quotes map[string]*model.Quote) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📋 <b>自选股行情</b> | %s\n\n", time.Now().Format("2006-01-02 15:04")))

	if len(items) == 0 {
		b.WriteString("自选股列表为空\n")
		return b.String()
	}

	for _, item := range items {
		q, ok := quotes[item.Code]
		if !ok || q == nil {
			b.WriteString(fmt.Sprintf("%s (%s): 无行情数据\n", item.Name, item.Code))
			continue
		}
		b.WriteString(fmt.Sprintf("%s (%s): %.2f (%+.2f%%)\n", q.Name, item.Code, q.Price, q.ChangePct))
	}
	return b.String()
}

// FormatPrediction formats a prediction result for one stock. Predictions
// built from demo data carry an explicit notice.
func FormatPrediction(code string, tf model.Timeframe, result *model.PredictionResult, source model.DataSource) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔮 <b>走势预测</b> | %s (%s)\n\n", code, tf))

	prices := result.Ensemble.Prices
	if len(prices) > 0 {
		b.WriteString(fmt.Sprintf("预测终点价格: %.2f\n", prices[len(prices)-1]))
	}
	if len(result.PriceChangePcts) > 0 {
		b.WriteString(fmt.Sprintf("预期涨跌幅: %+.2f%%\n", result.PriceChangePcts[len(result.PriceChangePcts)-1]))
	}
	b.WriteString(fmt.Sprintf("置信度: %.0f%%\n", result.Confidence*100))
	b.WriteString(fmt.Sprintf("操作建议: %s\n", result.Signal.Recommendation))
	if source == model.DataSourceDemo {
		b.WriteString("\n⚠️ 历史行情不可用，本预测基于演示数据\n")
	}
	b.WriteString("\n仅供参考，不构成投资建议")
	return b.String()
}
