package i18n

var translations = map[string]map[string]string{
	"en": {
		"login":                  "Login",
		"register":               "Register",
		"email":                  "Email",
		"password":               "Password",
		"full_name":              "Full Name",
		"role":                   "Role",
		"patient":                "Patient",
		"doctor":                 "Doctor",
		"welcome":                "Welcome",
		"dashboard":              "Dashboard",
		"upcoming_appointments":  "Upcoming Appointments",
		"recent_records":         "Recent Records",
		"add_record":             "Add Record",
		"history":                "History",
		"profile":                "Profile",
		"glucose":                "Glucose",
		"blood_pressure":         "Blood Pressure",
		"weight":                 "Weight",
		"date":                   "Date",
		"save":                   "Save",
		"logout":                 "Logout",
		"my_patients":            "My Patients",
		"add_patient":            "Add Patient",
		"search_email":           "Search by Email",
		"assign":                 "Assign",
		"cancel":                 "Cancel",
		"settings":               "Settings",
		"language":               "Language",
		"highest_glucose":        "Highest Glucose",
		"remove_patient":         "Remove Patient",
		"confirm_remove_patient": "Are you sure you want to remove this patient?",
		"spike_analysis":         "Spike Analysis",
		"diet_advice":            "Diet Advice",
		"chat":                   "Chat",
		"send":                   "Send",
		"appointment_requested":  "Appointment requested",
		"appointment_confirmed":  "Appointment confirmed",
		"appointment_cancelled":  "Appointment cancelled",
	},
	"fr": {
		"login":                  "Connexion",
		"register":               "Inscription",
		"email":                  "E-mail",
		"password":               "Mot de passe",
		"full_name":              "Nom complet",
		"role":                   "Rôle",
		"patient":                "Patient",
		"doctor":                 "Médecin",
		"welcome":                "Bienvenue",
		"dashboard":              "Tableau de bord",
		"upcoming_appointments":  "Rendez-vous à venir",
		"recent_records":         "Mesures récentes",
		"add_record":             "Ajouter une mesure",
		"history":                "Historique",
		"profile":                "Profil",
		"glucose":                "Glycémie",
		"blood_pressure":         "Tension artérielle",
		"weight":                 "Poids",
		"date":                   "Date",
		"save":                   "Enregistrer",
		"logout":                 "Déconnexion",
		"my_patients":            "Mes patients",
		"add_patient":            "Ajouter un patient",
		"search_email":           "Rechercher par e-mail",
		"assign":                 "Assigner",
		"cancel":                 "Annuler",
		"settings":               "Paramètres",
		"language":               "Langue",
		"highest_glucose":        "Glycémie la plus élevée",
		"remove_patient":         "Retirer le patient",
		"confirm_remove_patient": "Voulez-vous vraiment retirer ce patient ?",
		"spike_analysis":         "Analyse des pics",
		"diet_advice":            "Conseils diététiques",
		"chat":                   "Discussion",
		"send":                   "Envoyer",
		"appointment_requested":  "Rendez-vous demandé",
		"appointment_confirmed":  "Rendez-vous confirmé",
		"appointment_cancelled":  "Rendez-vous annulé",
	},
	"ar": {
		"login":                  "تسجيل الدخول",
		"register":               "إنشاء حساب",
		"email":                  "البريد الإلكتروني",
		"password":               "كلمة المرور",
		"full_name":              "الاسم الكامل",
		"role":                   "الدور",
		"patient":                "مريض",
		"doctor":                 "طبيب",
		"welcome":                "مرحباً",
		"dashboard":              "لوحة التحكم",
		"upcoming_appointments":  "المواعيد القادمة",
		"recent_records":         "القياسات الأخيرة",
		"add_record":             "إضافة قياس",
		"history":                "السجل",
		"profile":                "الملف الشخصي",
		"glucose":                "سكر الدم",
		"blood_pressure":         "ضغط الدم",
		"weight":                 "الوزن",
		"date":                   "التاريخ",
		"save":                   "حفظ",
		"logout":                 "تسجيل الخروج",
		"my_patients":            "مرضاي",
		"add_patient":            "إضافة مريض",
		"search_email":           "البحث بالبريد الإلكتروني",
		"assign":                 "تعيين",
		"cancel":                 "إلغاء",
		"settings":               "الإعدادات",
		"language":               "اللغة",
		"highest_glucose":        "أعلى مستوى سكر",
		"remove_patient":         "إزالة المريض",
		"confirm_remove_patient": "هل أنت متأكد من إزالة هذا المريض؟",
		"spike_analysis":         "تحليل الارتفاعات",
		"diet_advice":            "نصائح غذائية",
		"chat":                   "محادثة",
		"send":                   "إرسال",
		"appointment_requested":  "تم طلب الموعد",
		"appointment_confirmed":  "تم تأكيد الموعد",
		"appointment_cancelled":  "تم إلغاء الموعد",
	},
}
