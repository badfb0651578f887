// README: Fixed user-facing messages and trigger tokens (Persian reply locale).
package dialogue

// ResetCommand restarts the conversation; checked before anything else.
const ResetCommand = "/start"

// ReserveKeyword triggers the reservation transition. It is a plain substring
// test on the raw text and fires in any state.
const ReserveKeyword = "رزرو"

const welcomeMessage = "سلام، ممنونم از اینکه سایناسفر رو انتخاب کردی 🙏\n\n" +
	"من دستیار هوشمند تیم ساینا هستم و آماده‌ام بهت کمک کنم مناسب‌ترین گزینه‌های سفرت رو انتخاب کنی.\n\n" +
	"برای شروع لطفاً اطلاعات زیر رو بنویس:\n" +
	"- مبدا و مقصد\n- تاریخ سفر\n- تعداد نفرات\n\n" +
	"مثال: «پرواز از شیراز به دبی، هفته اول خرداد، دو نفر بزرگسال»"

const outOfScopeMessage = "در حال حاضر فقط می‌تونم درباره پروازها و هتل‌ها کمکتون کنم."

const noDataMessage = "متاسفانه در حال حاضر اطلاعاتی برای نمایش ندارم."

const confirmationMessage = "✅ رزرو شما ثبت شد. یکی از کارشناسان ما به زودی با شما تماس خواهد گرفت."

// missingInfoFallback is returned when the prompt generator itself fails; the
// conversation must keep moving even without the model.
const missingInfoFallback = "لطفاً اطلاعات سفر خود را کامل بفرستید: مبدأ، مقصد، تاریخ سفر و تعداد نفرات."
