package i18n

var builtins = map[string]*Catalog{
	"ar": arabic,
	"en": english,
}

var arabic = &Catalog{
	Locale:   "ar",
	Weekdays: []string{"الأحد", "الاثنين", "الثلاثاء", "الأربعاء", "الخميس", "الجمعة", "السبت"},
	Months: []string{
		"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
		"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
	},
	LongDate: "{weekday}، {day} {month} {year}",
	Messages: Messages{
		Previous: "◀️ السابق",
		Next:     "التالي ▶️",
		Today:    "اليوم",

		CountLabel: "إجمالي الحجوزات اليوم",
		HoursLabel: "مجموع الساعات المحجوزة",

		ColumnTitle:  "العنوان",
		ColumnName:   "الاسم",
		ColumnTime:   "الوقت",
		ColumnAction: "إجراء",

		Loading:    "جارٍ التحميل...",
		Empty:      "لا توجد حجوزات في هذا اليوم.",
		LoadFailed: "تعذّر تحميل الحجوزات.",

		Delete:        "حذف",
		ConfirmDelete: "هل أنت متأكد من حذف هذا الحجز؟",
		Yes:           "نعم",
		No:            "لا",

		NewBooking:     "إنشاء حجز جديد",
		FieldTitle:     "عنوان الاجتماع",
		FieldName:      "الاسم",
		FieldEmail:     "البريد الإلكتروني (اختياري)",
		FieldStart:     "وقت البداية",
		FieldEnd:       "وقت النهاية",
		Submit:         "تأكيد الحجز",
		RequiredFields: "الرجاء تعبئة جميع الحقول المطلوبة.",

		Created:      "تم إنشاء الحجز بنجاح ✅",
		Deleted:      "تم حذف الحجز.",
		GenericError: "حدث خطأ، يرجى المحاولة مرة أخرى.",

		AskTitle:    "أدخل عنوان الاجتماع:",
		AskName:     "أدخل اسم المنظم:",
		AskStart:    "أدخل وقت البداية (YYYY-MM-DD HH:MM) أو - للإبقاء على %s:",
		AskEnd:      "أدخل وقت النهاية (YYYY-MM-DD HH:MM) أو - للإبقاء على %s:",
		InvalidTime: "صيغة الوقت غير صحيحة. مثال: 2025-09-24 14:30",
		InvalidDate: "صيغة التاريخ غير صحيحة. مثال: 2025-09-24",
		Cancelled:   "تم الإلغاء.",

		UnknownCommand: "أمر غير معروف. اكتب help لعرض الأوامر.",
		ExportDone:     "تم التصدير إلى %s",
		ExportFailed:   "تعذّر التصدير.",
		Help: "الأوامر: prev | next | today | goto YYYY-MM-DD | refresh | " +
			"title … | name … | email … | start YYYY-MM-DD HH:MM | end YYYY-MM-DD HH:MM | " +
			"draft | book | del <id> | export [dir] | quit",
		BotHelp: "/start عرض اليوم\n/today العودة إلى اليوم\n/book إنشاء حجز جديد\n/cancel إلغاء الحجز الجاري\n/help المساعدة",
	},
}

var english = &Catalog{
	Locale:   "en",
	Weekdays: []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	Months: []string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
	LongDate: "{weekday}, {day} {month} {year}",
	Messages: Messages{
		Previous: "◀ Previous",
		Next:     "Next ▶",
		Today:    "Today",

		CountLabel: "Total bookings today",
		HoursLabel: "Hours booked",

		ColumnTitle:  "Title",
		ColumnName:   "Name",
		ColumnTime:   "Time",
		ColumnAction: "Action",

		Loading:    "Loading...",
		Empty:      "No bookings this day.",
		LoadFailed: "Failed to load bookings.",

		Delete:        "Delete",
		ConfirmDelete: "Are you sure you want to delete this booking?",
		Yes:           "Yes",
		No:            "No",

		NewBooking:     "New booking",
		FieldTitle:     "Meeting title",
		FieldName:      "Name",
		FieldEmail:     "Email (optional)",
		FieldStart:     "Start time",
		FieldEnd:       "End time",
		Submit:         "Confirm booking",
		RequiredFields: "Please fill in all required fields.",

		Created:      "Booking created ✅",
		Deleted:      "Booking deleted.",
		GenericError: "Something went wrong, please try again.",

		AskTitle:    "Enter the meeting title:",
		AskName:     "Enter the organizer name:",
		AskStart:    "Enter the start time (YYYY-MM-DD HH:MM) or - to keep %s:",
		AskEnd:      "Enter the end time (YYYY-MM-DD HH:MM) or - to keep %s:",
		InvalidTime: "Invalid time. Example: 2025-09-24 14:30",
		InvalidDate: "Invalid date. Example: 2025-09-24",
		Cancelled:   "Cancelled.",

		UnknownCommand: "Unknown command. Type help for the list.",
		ExportDone:     "Exported to %s",
		ExportFailed:   "Export failed.",
		Help: "commands: prev | next | today | goto YYYY-MM-DD | refresh | " +
			"title … | name … | email … | start YYYY-MM-DD HH:MM | end YYYY-MM-DD HH:MM | " +
			"draft | book | del <id> | export [dir] | quit",
		BotHelp: "/start show the day\n/today jump to today\n/book new booking\n/cancel abandon the booking in progress\n/help this message",
	},
}
